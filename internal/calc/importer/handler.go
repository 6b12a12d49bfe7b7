package importer

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/arenoe-studio/terzaghi-calculator/internal/api"
	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

const MaxUploadSize = 10 << 20 // 10MB

type RowResult struct {
	Row         int             `json:"row"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Result      *bearing.Result `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	Field       string          `json:"field,omitempty"`
}

type Summary struct {
	Count     int         `json:"count"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Results   []RowResult `json:"results"`
}

// Import reads a workbook and calculates every data row.
func Import(r io.Reader) (Summary, error) {
	rows, err := ReadWorkbook(r)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Count: len(rows), Results: make([]RowResult, 0, len(rows))}
	for _, row := range rows {
		rr := RowResult{Row: row.Row, Description: row.Description}
		var err error
		if row.Err != nil {
			err = row.Err
		} else {
			var res bearing.Result
			if res, err = bearing.Evaluate(row.Input); err == nil {
				rr.Result = &res
			}
		}
		rr.Status = bearing.Outcome(err)
		if err != nil {
			rr.Error = err.Error()
			var ve *bearing.ValidationError
			if errors.As(err, &ve) {
				rr.Field = ve.Field
			}
			s.Failed++
		} else {
			s.Succeeded++
		}
		s.Results = append(s.Results, rr)
	}
	return s, nil
}

type Handler struct {
	Logger *slog.Logger
}

// Import serves a multipart upload with the workbook in the "file" field.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		api.Error(w, http.StatusBadRequest, "File too big")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	s, err := Import(file)
	if errors.Is(err, ErrEmptySheet) {
		api.Error(w, http.StatusBadRequest, "Empty sheet")
		return
	}
	if err != nil {
		h.log().Warn("workbook import failed", "err", err)
		api.Error(w, http.StatusBadRequest, "Invalid file")
		return
	}
	api.OK(w, s)
}

func (h *Handler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
