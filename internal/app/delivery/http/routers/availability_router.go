package routers

import (
	"mentorin-service/internal/app/delivery/http/controllers"
	"mentorin-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	// Mentor editing surface
	router.With(middlewares.Authentication).Post("/weekly", availabilityController.CreateWeeklySlot)
	router.With(middlewares.Authentication).Put("/weekly/{slotID}", availabilityController.UpdateWeeklySlot)
	router.With(middlewares.Authentication).Delete("/weekly/{slotID}", availabilityController.DeleteWeeklySlot)
	router.With(middlewares.Authentication).Patch("/weekly/{slotID}/toggle", availabilityController.ToggleWeeklySlot)
	router.With(middlewares.Authentication).Patch("/weekly/weekday/{dayOfWeek}", availabilityController.ToggleWeekday)

	router.With(middlewares.Authentication).Post("/overrides", availabilityController.CreateDateOverrideSlot)
	router.With(middlewares.Authentication).Put("/overrides/{slotID}", availabilityController.UpdateDateOverrideSlot)
	router.With(middlewares.Authentication).Delete("/overrides/{slotID}", availabilityController.DeleteDateOverrideSlot)

	router.With(middlewares.Authentication).Get("/rules", availabilityController.ListMentorRules)

	// Learner booking read, no session required
	router.Get("/bookable", availabilityController.FindBookableStartTimes)
}
