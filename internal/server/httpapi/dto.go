package httpapi

import (
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
)

type entryRequest struct {
	Content   string  `json:"content"`
	Mood      *string `json:"mood"`
	CreatedAt *string `json:"created_at"`
}

type entryResponse struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Mood      *string `json:"mood"`
	CreatedAt string  `json:"created_at"`
}

type pageResponse struct {
	Items   []entryResponse `json:"items"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	HasMore bool            `json:"has_more"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	UserName  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func toEntryResponse(zone *timex.Zone, e *models.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Content:   e.Content,
		Mood:      e.Mood,
		CreatedAt: zone.Format(e.CreatedAt),
	}
}

func toEntryResponses(zone *timex.Zone, list []*models.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEntryResponse(zone, e))
	}
	return out
}
