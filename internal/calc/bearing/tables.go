package bearing

// FactorRow is one tabulated point of Terzaghi's bearing-capacity factors.
type FactorRow struct {
	Phi float64
	Nc  float64
	Nq  float64
	Ng  float64
}

// generalShear holds Terzaghi's factors for general shear failure, one row per degree.
var generalShear = []FactorRow{
	{Phi: 0, Nc: 5.70, Nq: 1.00, Ng: 0.00},
	{Phi: 1, Nc: 6.00, Nq: 1.10, Ng: 0.01},
	{Phi: 2, Nc: 6.30, Nq: 1.22, Ng: 0.04},
	{Phi: 3, Nc: 6.62, Nq: 1.35, Ng: 0.06},
	{Phi: 4, Nc: 6.97, Nq: 1.49, Ng: 0.10},
	{Phi: 5, Nc: 7.34, Nq: 1.64, Ng: 0.14},
	{Phi: 6, Nc: 7.73, Nq: 1.81, Ng: 0.20},
	{Phi: 7, Nc: 8.15, Nq: 2.00, Ng: 0.27},
	{Phi: 8, Nc: 8.60, Nq: 2.21, Ng: 0.35},
	{Phi: 9, Nc: 9.09, Nq: 2.44, Ng: 0.44},
	{Phi: 10, Nc: 9.61, Nq: 2.69, Ng: 0.56},
	{Phi: 11, Nc: 10.16, Nq: 2.98, Ng: 0.69},
	{Phi: 12, Nc: 10.76, Nq: 3.29, Ng: 0.85},
	{Phi: 13, Nc: 11.41, Nq: 3.63, Ng: 1.04},
	{Phi: 14, Nc: 12.11, Nq: 4.02, Ng: 1.26},
	{Phi: 15, Nc: 12.86, Nq: 4.45, Ng: 1.52},
	{Phi: 16, Nc: 13.68, Nq: 4.92, Ng: 1.82},
	{Phi: 17, Nc: 14.60, Nq: 5.45, Ng: 2.18},
	{Phi: 18, Nc: 15.12, Nq: 6.04, Ng: 2.59},
	{Phi: 19, Nc: 16.56, Nq: 6.70, Ng: 3.07},
	{Phi: 20, Nc: 17.69, Nq: 7.44, Ng: 3.64},
	{Phi: 21, Nc: 18.92, Nq: 8.26, Ng: 4.31},
	{Phi: 22, Nc: 20.27, Nq: 9.19, Ng: 5.09},
	{Phi: 23, Nc: 21.75, Nq: 10.23, Ng: 6.00},
	{Phi: 24, Nc: 23.36, Nq: 11.40, Ng: 7.08},
	{Phi: 25, Nc: 25.13, Nq: 12.72, Ng: 8.34},
	{Phi: 26, Nc: 27.09, Nq: 14.21, Ng: 9.84},
	{Phi: 27, Nc: 29.24, Nq: 15.90, Ng: 11.60},
	{Phi: 28, Nc: 31.61, Nq: 17.81, Ng: 13.70},
	{Phi: 29, Nc: 34.24, Nq: 19.98, Ng: 16.18},
	{Phi: 30, Nc: 37.16, Nq: 22.46, Ng: 19.13},
	{Phi: 31, Nc: 40.41, Nq: 25.28, Ng: 22.65},
	{Phi: 32, Nc: 44.04, Nq: 28.52, Ng: 26.87},
	{Phi: 33, Nc: 48.09, Nq: 32.23, Ng: 31.94},
	{Phi: 34, Nc: 52.64, Nq: 36.50, Ng: 38.04},
	{Phi: 35, Nc: 57.75, Nq: 41.44, Ng: 45.41},
	{Phi: 36, Nc: 63.53, Nq: 47.16, Ng: 54.36},
	{Phi: 37, Nc: 70.01, Nq: 53.80, Ng: 65.27},
	{Phi: 38, Nc: 77.50, Nq: 61.55, Ng: 78.61},
	{Phi: 39, Nc: 85.97, Nq: 70.61, Ng: 95.03},
	{Phi: 40, Nc: 95.66, Nq: 81.27, Ng: 115.31},
	{Phi: 41, Nc: 106.81, Nq: 93.85, Ng: 140.51},
	{Phi: 42, Nc: 119.67, Nq: 108.75, Ng: 171.99},
	{Phi: 43, Nc: 134.58, Nq: 126.50, Ng: 211.56},
	{Phi: 44, Nc: 151.95, Nq: 147.74, Ng: 261.60},
	{Phi: 45, Nc: 172.28, Nq: 173.28, Ng: 325.34},
	{Phi: 46, Nc: 196.22, Nq: 204.19, Ng: 407.11},
	{Phi: 47, Nc: 224.55, Nq: 241.80, Ng: 512.84},
	{Phi: 48, Nc: 258.28, Nq: 287.85, Ng: 650.67},
	{Phi: 49, Nc: 298.71, Nq: 344.63, Ng: 831.99},
	{Phi: 50, Nc: 347.50, Nq: 415.14, Ng: 1072.80},
}

// localShear holds the reduced factors N'c, N'q, N'γ for local shear failure.
var localShear = []FactorRow{
	{Phi: 0, Nc: 5.70, Nq: 1.00, Ng: 0.00},
	{Phi: 1, Nc: 5.90, Nq: 1.07, Ng: 0.005},
	{Phi: 2, Nc: 6.10, Nq: 1.14, Ng: 0.02},
	{Phi: 3, Nc: 6.30, Nq: 1.22, Ng: 0.04},
	{Phi: 4, Nc: 6.51, Nq: 1.30, Ng: 0.055},
	{Phi: 5, Nc: 6.74, Nq: 1.39, Ng: 0.074},
	{Phi: 6, Nc: 6.97, Nq: 1.49, Ng: 0.10},
	{Phi: 7, Nc: 7.22, Nq: 1.59, Ng: 0.128},
	{Phi: 8, Nc: 7.47, Nq: 1.70, Ng: 0.16},
	{Phi: 9, Nc: 7.74, Nq: 1.82, Ng: 0.20},
	{Phi: 10, Nc: 8.02, Nq: 1.94, Ng: 0.24},
	{Phi: 11, Nc: 8.32, Nq: 2.08, Ng: 0.30},
	{Phi: 12, Nc: 8.63, Nq: 2.22, Ng: 0.35},
	{Phi: 13, Nc: 8.96, Nq: 2.38, Ng: 0.42},
	{Phi: 14, Nc: 9.31, Nq: 2.55, Ng: 0.48},
	{Phi: 15, Nc: 9.67, Nq: 2.73, Ng: 0.57},
	{Phi: 16, Nc: 10.06, Nq: 2.92, Ng: 0.67},
	{Phi: 17, Nc: 10.47, Nq: 3.13, Ng: 0.76},
	{Phi: 18, Nc: 10.90, Nq: 3.36, Ng: 0.88},
	{Phi: 19, Nc: 11.36, Nq: 3.61, Ng: 1.03},
	{Phi: 20, Nc: 11.85, Nq: 3.88, Ng: 1.12},
	{Phi: 21, Nc: 12.37, Nq: 4.17, Ng: 1.35},
	{Phi: 22, Nc: 12.92, Nq: 4.48, Ng: 1.55},
	{Phi: 23, Nc: 13.51, Nq: 4.82, Ng: 1.74},
	{Phi: 24, Nc: 14.14, Nq: 5.20, Ng: 1.97},
	{Phi: 25, Nc: 14.80, Nq: 5.60, Ng: 2.25},
	{Phi: 26, Nc: 15.53, Nq: 6.05, Ng: 2.59},
	{Phi: 27, Nc: 16.30, Nq: 6.54, Ng: 2.88},
	{Phi: 28, Nc: 17.13, Nq: 7.07, Ng: 3.29},
	{Phi: 29, Nc: 18.03, Nq: 7.66, Ng: 3.76},
	{Phi: 30, Nc: 18.99, Nq: 8.31, Ng: 4.39},
	{Phi: 31, Nc: 20.03, Nq: 9.03, Ng: 4.83},
	{Phi: 32, Nc: 21.16, Nq: 9.82, Ng: 5.51},
	{Phi: 33, Nc: 22.39, Nq: 10.69, Ng: 6.32},
	{Phi: 34, Nc: 23.72, Nq: 11.67, Ng: 7.22},
	{Phi: 35, Nc: 25.18, Nq: 12.75, Ng: 8.35},
	{Phi: 36, Nc: 26.77, Nq: 13.97, Ng: 9.41},
	{Phi: 37, Nc: 28.51, Nq: 15.32, Ng: 10.90},
	{Phi: 38, Nc: 30.43, Nq: 16.85, Ng: 12.75},
	{Phi: 39, Nc: 32.53, Nq: 18.56, Ng: 14.71},
	{Phi: 40, Nc: 34.87, Nq: 20.50, Ng: 17.22},
	{Phi: 41, Nc: 37.45, Nq: 22.70, Ng: 19.75},
	{Phi: 42, Nc: 40.33, Nq: 25.21, Ng: 22.50},
	{Phi: 43, Nc: 43.54, Nq: 28.06, Ng: 26.25},
	{Phi: 44, Nc: 47.13, Nq: 31.34, Ng: 30.40},
	{Phi: 45, Nc: 51.17, Nq: 35.11, Ng: 36.00},
	{Phi: 46, Nc: 55.73, Nq: 39.48, Ng: 41.70},
	{Phi: 47, Nc: 60.91, Nq: 44.45, Ng: 49.30},
	{Phi: 48, Nc: 66.80, Nq: 50.46, Ng: 59.25},
	{Phi: 49, Nc: 73.55, Nq: 57.41, Ng: 71.45},
	{Phi: 50, Nc: 81.31, Nq: 65.60, Ng: 85.75},
}
