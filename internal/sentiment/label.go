package sentiment

// Label is a three-way sentiment class.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

// Count is a label distribution. All three keys are always present.
type Count struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

func (c *Count) Add(l Label) {
	switch l {
	case Positive:
		c.Positive++
	case Negative:
		c.Negative++
	default:
		c.Neutral++
	}
}

func (c Count) Total() int { return c.Positive + c.Negative + c.Neutral }
