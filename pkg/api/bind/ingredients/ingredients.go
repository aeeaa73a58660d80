package ingredients

import (
	apiingr "github.com/foodgram-dev/foodgram/pkg/api/types/ingredients"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

func Compose(i domain.Ingredient) apiingr.Ingredient {
	return apiingr.Ingredient{
		Id:              i.Id,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}
