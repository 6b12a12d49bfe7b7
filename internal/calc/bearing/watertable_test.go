package bearing

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

const (
	γ  = 0.0018 // kg/cm³
	γp = 0.0009 // kg/cm³, γsat - γw
	Df = 150.0  // cm
	B  = 200.0  // cm
)

func Test_water01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("water01. no water table")

	ob := AdjustForWaterTable(γ, 0, Df, nil, B)
	chk.Float64(tst, "q", 1e-15, ob.QAdjusted, γ*Df)
	chk.Float64(tst, "γeff", 0, ob.GammaEffective, γ)

	// γ' is ignored without a water table
	ob2 := AdjustForWaterTable(γ, γp, Df, nil, B)
	chk.Float64(tst, "q with γ'", 0, ob2.QAdjusted, ob.QAdjusted)
	chk.Float64(tst, "γeff with γ'", 0, ob2.GammaEffective, ob.GammaEffective)
}

func Test_water02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("water02. water table above the base")

	ob := AdjustForWaterTable(γ, γp, Df, Float(100), B)
	chk.Float64(tst, "q", 1e-15, ob.QAdjusted, γ*100+γp*50)
	chk.Float64(tst, "γeff", 0, ob.GammaEffective, γp)

	ob = AdjustForWaterTable(γ, γp, Df, Float(0), B)
	chk.Float64(tst, "q, water at surface", 1e-15, ob.QAdjusted, γp*Df)
}

func Test_water03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("water03. water table at the base")

	ob := AdjustForWaterTable(γ, γp, Df, Float(Df), B)
	chk.Float64(tst, "q", 0, ob.QAdjusted, γ*Df)
	chk.Float64(tst, "γeff", 0, ob.GammaEffective, γp)
}

func Test_water04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("water04. water table below the base")

	ob := AdjustForWaterTable(γ, γp, Df, Float(Df+50), B)
	chk.Float64(tst, "q", 0, ob.QAdjusted, γ*Df)
	chk.Float64(tst, "γeff blended", 1e-15, ob.GammaEffective, γp+0.25*(γ-γp))

	ob = AdjustForWaterTable(γ, γp, Df, Float(Df+B), B)
	chk.Float64(tst, "γeff at d = B", 0, ob.GammaEffective, γ)

	ob = AdjustForWaterTable(γ, γp, Df, Float(Df+3*B), B)
	chk.Float64(tst, "γeff far below", 0, ob.GammaEffective, γ)
}

func Test_water05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("water05. continuity at Dw = Df and d = B")

	const ε = 1e-9
	above := AdjustForWaterTable(γ, γp, Df, Float(Df-ε), B)
	at := AdjustForWaterTable(γ, γp, Df, Float(Df), B)
	below := AdjustForWaterTable(γ, γp, Df, Float(Df+ε), B)
	chk.Float64(tst, "q above/at", 1e-12, above.QAdjusted, at.QAdjusted)
	chk.Float64(tst, "q below/at", 1e-12, below.QAdjusted, at.QAdjusted)
	chk.Float64(tst, "γeff above/at", 1e-12, above.GammaEffective, at.GammaEffective)
	chk.Float64(tst, "γeff below/at", 1e-12, below.GammaEffective, at.GammaEffective)

	inside := AdjustForWaterTable(γ, γp, Df, Float(Df+B-ε), B)
	edge := AdjustForWaterTable(γ, γp, Df, Float(Df+B), B)
	chk.Float64(tst, "γeff at d = B", 1e-12, inside.GammaEffective, edge.GammaEffective)
	chk.Float64(tst, "q at d = B", 0, inside.QAdjusted, edge.QAdjusted)
}
