package routes

import (
	"sync"

	"github.com/marcus-bailey/nom-nom-tracker/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the calendar_date and clock_time binding tags to
// gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
			_, err := utils.ParseCalendarDate(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("clock_time", func(fl validator.FieldLevel) bool {
			_, _, _, err := utils.ParseClockTime(fl.Field().String())
			return err == nil
		})
	})
}
