package batch

import (
	"errors"
	"fmt"

	"github.com/arenoe-studio/terzaghi-calculator/internal/calc/bearing"
)

// MaxItems bounds one batch request.
const MaxItems = 500

var ErrNoItems = errors.New("no items")

// Item is one named case. In YAML the input fields sit next to name.
type Item struct {
	Name  string        `json:"name" yaml:"name"`
	Input bearing.Input `json:"input" yaml:",inline"`
}

type Input struct {
	Items []Item `json:"items" yaml:"cases"`
}

type Outcome struct {
	Index  int             `json:"index"`
	Name   string          `json:"name,omitempty"`
	Status string          `json:"status"`
	Result *bearing.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Field  string          `json:"field,omitempty"`
}

type Result struct {
	Results   []Outcome `json:"results"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// Evaluate runs every item independently; a failing item is reported in its
// Outcome and does not stop the rest.
func Evaluate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if len(in.Items) > MaxItems {
		return Result{}, fmt.Errorf("too many items: %d (max %d)", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]Outcome, 0, len(in.Items))}
	for i, item := range in.Items {
		out.Results = append(out.Results, evaluateOne(i, item))
		if out.Results[i].Result != nil {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return out, nil
}

func evaluateOne(i int, item Item) Outcome {
	o := Outcome{Index: i, Name: item.Name}
	res, err := bearing.Evaluate(item.Input)
	o.Status = bearing.Outcome(err)
	if err != nil {
		o.Error = err.Error()
		var ve *bearing.ValidationError
		if errors.As(err, &ve) {
			o.Field = ve.Field
		}
		return o
	}
	o.Result = &res
	return o
}
