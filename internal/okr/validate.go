package okr

import (
	"fmt"
	"strings"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
)

func validateCreate(dto CreateOKRDTO) error {
	fields := commonFieldErrors(dto.Title, dto.Objective, dto.Quarter, dto.Year, dto.KeyResults)
	if len(fields) > 0 {
		return apperror.NewValidation(fields...)
	}
	return nil
}

func validateUpdate(dto UpdateOKRDTO) error {
	fields := commonFieldErrors(dto.Title, dto.Objective, dto.Quarter, dto.Year, dto.KeyResults)
	if !dto.Status.IsValid() {
		fields = append(fields, "status")
	}
	if dto.Progress < 0 || dto.Progress > 100 {
		fields = append(fields, "progress")
	}
	if len(fields) > 0 {
		return apperror.NewValidation(fields...)
	}
	return nil
}

func commonFieldErrors(title, objective string, quarter Quarter, year int, keyResults []KeyResultDTO) []string {
	var fields []string

	if strings.TrimSpace(title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(objective) == "" {
		fields = append(fields, "objective")
	}
	if !quarter.IsValid() {
		fields = append(fields, "quarter")
	}
	if year < MinYear || year > MaxYear {
		fields = append(fields, "year")
	}

	if len(keyResults) == 0 {
		fields = append(fields, "key_results")
		return fields
	}
	for i, kr := range keyResults {
		if strings.TrimSpace(kr.Description) == "" {
			fields = append(fields, fmt.Sprintf("key_results[%d].description", i))
		}
		if strings.TrimSpace(kr.Target) == "" {
			fields = append(fields, fmt.Sprintf("key_results[%d].target", i))
		}
	}
	return fields
}

// toKeyResults normalizes the submitted list; an empty current value takes
// the "0" default.
func toKeyResults(dtos []KeyResultDTO) []KeyResult {
	results := make([]KeyResult, 0, len(dtos))
	for _, dto := range dtos {
		current := dto.Current
		if current == "" {
			current = "0"
		}
		results = append(results, KeyResult{
			Description: dto.Description,
			Target:      dto.Target,
			Current:     current,
		})
	}
	return results
}
