package httpadapter

import (
	"context"

	"orderflow/contexts/commerce/activity-service/application/queries"
	httptransport "orderflow/contexts/commerce/activity-service/transport/http"
)

type Handler struct {
	ListActivity queries.ListActivityUseCase
}

// ListActivityHandler godoc
// @Summary List recorded activity
// @Description Returns one entry per consumed creation event, in arrival order.
// @Tags activity-service
// @Produce json
// @Success 200 {object} httptransport.ListActivityResponse
// @Router /v1/activity [get]
func (h Handler) ListActivityHandler(ctx context.Context) (httptransport.ListActivityResponse, error) {
	entries, err := h.ListActivity.Execute(ctx)
	if err != nil {
		return httptransport.ListActivityResponse{}, err
	}
	items := make([]httptransport.ActivityEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, httptransport.ActivityEntryDTO{
			EventID:    entry.EventID,
			EventType:  entry.EventType,
			Topic:      entry.Topic,
			Source:     entry.Source,
			SubjectID:  entry.SubjectID,
			Route:      entry.Route,
			Recognized: entry.Recognized,
			OccurredAt: entry.OccurredAt.UTC().Format("2006-01-02T15:04:05Z"),
			RecordedAt: entry.RecordedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return httptransport.ListActivityResponse{Items: items}, nil
}
