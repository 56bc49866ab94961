package http

import "github.com/randomtoy/planar-go/internal/domain"

// placeholderID stands in for decks that have not been stored yet.
const placeholderID = "00000000"

// GenerateRequest is the JSON body of POST /deck/generate. Absent fields
// take the defaults of a standard planechase game.
type GenerateRequest struct {
	Size      *int  `json:"size"`
	Phenomena *bool `json:"phenomena"`
}

// DeckInfo is the JSON shape returned by every deck endpoint.
type DeckInfo struct {
	DeckSize            int            `json:"deckSize"`
	CurrentPlane        CardResponse   `json:"currentPlane"`
	SpatialMergingPlane *CardResponse  `json:"spatialMergingPlane,omitempty"`
	InterplanarPlanes   []CardResponse `json:"interplanarPlanes,omitempty"`
	StartTime           int64          `json:"startTime"`
	ID                  string         `json:"id"`
}

type CardResponse struct {
	Name         string          `json:"name"`
	Type         domain.CardType `json:"type"`
	ImageURI     string          `json:"imageUri"`
	MultiverseID int64           `json:"multiverseId"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toDeckInfo(d domain.Deck) DeckInfo {
	info := DeckInfo{
		DeckSize:     d.Size(),
		CurrentPlane: toCardResponse(d.Current),
		StartTime:    d.StartTime.Unix(),
		ID:           placeholderID,
	}
	if d.HasID() {
		info.ID = d.ID
	}
	if d.Companion != nil {
		c := toCardResponse(*d.Companion)
		info.SpatialMergingPlane = &c
	}
	if len(d.Pending) > 0 {
		info.InterplanarPlanes = make([]CardResponse, len(d.Pending))
		for i, p := range d.Pending {
			info.InterplanarPlanes[i] = toCardResponse(p)
		}
	}
	return info
}

func toCardResponse(c domain.Card) CardResponse {
	return CardResponse{
		Name:         c.Name,
		Type:         c.Type,
		ImageURI:     c.Art,
		MultiverseID: c.ID,
	}
}
