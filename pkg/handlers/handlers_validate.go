package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
	"github.com/arnavshah/freewindow-api-go/pkg/ingest"
	"github.com/arnavshah/freewindow-api-go/pkg/models"
)

// ValidateInput checks an availability request without computing it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.AvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if _, err := h.engine(runParams{windowStart: input.WindowStart, windowEnd: input.WindowEnd, step: input.Step}); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if len(input.Records) == 0 && len(input.People) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one record or person is required",
		})
		return
	}

	days := input.Days
	if len(days) == 0 {
		days = h.Config.Days
	}
	known := make(map[string]bool, len(days))
	for _, d := range days {
		known[availability.DayKey(d)] = true
	}

	busy, warnings := ingest.Resolve(rowsFromRecords(input.Records))
	people := make(map[string]bool)
	for _, p := range input.People {
		people[p] = true
	}
	for _, b := range busy {
		people[b.Person] = true
		if b.Start >= b.End {
			warnings = append(warnings, availability.Warning{
				Code:   availability.WarnMalformedInterval,
				Person: b.Person,
				Day:    b.Day,
				Detail: "start must be before end",
			})
		}
		if !known[availability.DayKey(b.Day)] {
			warnings = append(warnings, availability.Warning{
				Code:   availability.WarnUnknownDay,
				Person: b.Person,
				Day:    b.Day,
				Detail: "day not in the requested day set",
			})
		}
	}

	views := make([]models.WarningView, 0, len(warnings))
	for _, w := range warnings {
		views = append(views, models.WarningView(w))
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": len(busy) > 0 || len(input.People) > 0,
		"stats": gin.H{
			"people_count":  len(people),
			"record_count":  len(busy),
			"skipped_count": len(input.Records) - len(busy),
			"day_count":     len(days),
		},
		"warnings": views,
	})
}
