package class

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	activityTypeTag  = "activitytype"
	activityTypeText = "invalid activity type"
)

func init() {
	_ = core.Validate.RegisterValidation(activityTypeTag, activityTypeValidation)
	core.RegisterCustomTranslation(activityTypeTag, activityTypeText)
}

// activityTypeValidation checks that the provided type is in AllActivityTypes.
func activityTypeValidation(fl validator.FieldLevel) bool {
	t := ActivityType(fl.Field().String())
	for _, at := range AllActivityTypes {
		if t == at {
			return true
		}
	}
	return false
}
