package ingredients

// Ingredient is the JSON representation of an ingredient.
type Ingredient struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (i *Ingredient) Equal(o *Ingredient) bool {
	return *i == *o
}
