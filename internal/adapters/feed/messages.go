package feed

import (
	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

const (
	opSubscribe   = "subscribe"
	opUnsubscribe = "unsubscribe"

	msgResult = "result"
	msgTick   = "tick"
)

// controlMessage is an outbound subscribe or unsubscribe request.
type controlMessage struct {
	Op  string   `json:"op"`
	IDs []string `json:"ids"`
}

// inboundMessage is the envelope for everything the upstream sends.
type inboundMessage struct {
	Type    string          `json:"type"`
	Results []resultMessage `json:"results,omitempty"`
	ID      string          `json:"id,omitempty"`
	Fields  map[string]any  `json:"fields,omitempty"`
}

// resultMessage is one subscription outcome within a result envelope.
type resultMessage struct {
	Requested string `json:"requested"`
	Qualified string `json:"qualified,omitempty"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

func (m resultMessage) toFeedResult() ports.FeedResult {
	res := ports.FeedResult{
		Requested: domain.ParseExternalID(m.Requested),
		Reason:    m.Reason,
	}
	if m.Qualified != "" {
		res.Qualified = domain.ParseExternalID(m.Qualified)
	}
	switch m.Status {
	case "subscribed":
		res.Status = ports.FeedSubscribed
	case "not_available":
		res.Status = ports.FeedNotAvailable
	case "not_authorized":
		res.Status = ports.FeedNotAuthorized
	default:
		res.Status = ports.FeedInternalError
	}
	return res
}

func encodeIDs(ids []domain.ExternalID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
