package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"medibook/models"
)

// labKeywords route a message into the lab flow. Everything else is a
// doctor query.
var labKeywords = []string{
	"test", "lab", "blood", "cbc", "thyroid", "diabetes", "hba1c",
	"lipid", "liver", "kidney", "vitamin", "x-ray", "ultrasound",
	"ct scan", "mri", "ecg", "covid", "pregnancy",
}

// DetectFlow picks the consumer journey from keyword presence alone. The
// classifier never decides this; routing stays deterministic.
func DetectFlow(message string) models.Flow {
	lower := strings.ToLower(message)
	for _, kw := range labKeywords {
		if strings.Contains(lower, kw) {
			return models.FlowLab
		}
	}
	return models.FlowDoctor
}

// GeminiClassifier asks an LLM to classify the message into the fixed
// intent vocabulary and decodes the reply defensively: any missing, null or
// wrongly-typed field degrades to "not provided", never to a fault.
type GeminiClassifier struct {
	llm LLMClient
}

func NewGeminiClassifier(llm LLMClient) *GeminiClassifier {
	return &GeminiClassifier{llm: llm}
}

// Classify degrades a model transport failure to a plain search on the raw
// message; the catalog then answers with real data or a clean no-results
// reply instead of a hard error.
func (c *GeminiClassifier) Classify(ctx context.Context, flow models.Flow, req Request, session models.SessionState) (models.Intent, error) {
	prompt := buildPrompt(flow, req, session)
	raw, err := c.llm.GenerateContent(ctx, prompt)
	if err != nil {
		return models.SearchIntent{Query: req.Message}, nil
	}
	return DecodeIntent(raw), nil
}

func buildPrompt(flow models.Flow, req Request, session models.SessionState) string {
	var sb strings.Builder
	if flow == models.FlowLab {
		sb.WriteString(labSystemPrompt)
		fmt.Fprintf(&sb, "\nSession: stage=%s, cart has %d test(s).\n", session.Stage, len(session.Cart))
	} else {
		sb.WriteString(doctorSystemPrompt)
	}
	if session.LastQuery != "" {
		fmt.Fprintf(&sb, "Previous search subject: %q\n", session.LastQuery)
	}
	sb.WriteString("\nConversation History:\n")
	for _, turn := range req.History {
		fmt.Fprintf(&sb, "%s: %s\n", capitalize(turn.Role), turn.Content)
	}
	fmt.Fprintf(&sb, "\nCurrent User Query: %q\n\nJSON Output:\n", req.Message)
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const doctorSystemPrompt = `You are an intent parser for a doctor booking assistant.
You NEVER invent doctor names, slot ids, fees, ratings or availability.
Return STRICTLY valid JSON, no markdown, no explanations:
{
  "type": "search | filter | slots | booking | chat",
  "query": "specialty or doctor name, or null",
  "filters": {"max_fees": <number or null>, "min_rating": <number or null>},
  "slot_id": "<slot id or null>",
  "date": "<YYYY-MM-DD or null>",
  "response": "<only for type=chat, your reply to the user>"
}
Rules:
- "filter" only refines an earlier search; extract the specialty from history.
- Map symptoms to specialties (fever -> General Physician, skin -> Dermatologist,
  heart -> Cardiologist, child -> Pediatrician, teeth -> Dentist, bone -> Orthopedist).
- If required information is missing or the intent is ambiguous, use type=chat
  with a clarification question.
`

const labSystemPrompt = `You are an intent parser for a diagnostic lab test booking assistant.
You NEVER invent test names, prices or availability.
Return STRICTLY valid JSON, no markdown, no explanations:
{
  "type": "search | filter | add_to_cart | view_cart | remove_from_cart | availability | booking | chat",
  "query": "test name, category or health concern, or null",
  "filters": {"max_price": <number or null>, "home_collection": <boolean or null>, "min_rating": <number or null>},
  "test_id": "<test id or null>",
  "lab_id": "<lab id or null>",
  "slot_id": "<slot id or null>",
  "date": "<YYYY-MM-DD or null>",
  "time": "<time range or null>",
  "collection_type": "home | lab_visit | null",
  "response": "<only for type=chat, your reply to the user>"
}
Rules:
- Map health concerns to tests (fatigue -> Thyroid Profile, diabetes -> HbA1c,
  cholesterol -> Lipid Profile, anemia -> Complete Blood Count).
- Generic requests like "book lab test" are type=chat: list the categories.
- If information is missing, use type=chat with a clarifying question.
`

// DecodeIntent turns the raw model reply into a typed intent. Code fences
// are stripped, the query may arrive as a string or an array of strings, and
// an unknown or unparsable type falls back to a chat intent.
func DecodeIntent(raw string) models.Intent {
	text := stripCodeFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.ChatIntent{Reply: "Sorry, I didn't catch that. Could you rephrase?"}
	}

	intentType := strings.ToLower(strings.TrimSpace(stringField(payload, "type")))
	filters := decodeFilters(payload["filters"])

	switch intentType {
	case "search":
		return models.SearchIntent{Query: queryField(payload), Filters: filters}
	case "filter":
		return models.FilterIntent{Query: queryField(payload), Filters: filters}
	case "slots":
		return models.SlotsIntent{Subject: queryField(payload)}
	case "availability":
		return models.AvailabilityIntent{CollectionType: collectionField(payload)}
	case "add_to_cart", "cart":
		return models.AddToCartIntent{
			TestID: stringField(payload, "test_id"),
			LabID:  stringField(payload, "lab_id"),
		}
	case "view_cart":
		return models.ViewCartIntent{}
	case "remove_from_cart":
		return models.RemoveFromCartIntent{TestID: stringField(payload, "test_id")}
	case "booking":
		return models.BookingIntent{
			Subject:        queryField(payload),
			SlotID:         stringField(payload, "slot_id"),
			Date:           stringField(payload, "date"),
			Time:           stringField(payload, "time"),
			CollectionType: collectionField(payload),
		}
	case "chat":
		return models.ChatIntent{Reply: stringField(payload, "response")}
	default:
		return models.ChatIntent{Reply: stringField(payload, "response")}
	}
}

func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// stringField reads a string, tolerating absent, null or non-string values.
func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// queryField reads "query", which some model replies emit as an array of
// terms instead of a single string.
func queryField(payload map[string]any) string {
	switch v := payload["query"].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	default:
		return ""
	}
}

func collectionField(payload map[string]any) models.CollectionType {
	switch strings.ToLower(stringField(payload, "collection_type")) {
	case "home", "home_collection":
		return models.CollectionHome
	case "lab", "lab_visit":
		return models.CollectionLabVisit
	default:
		return ""
	}
}

// decodeFilters accepts the loose filters object. JSON numbers arrive as
// float64; integer thresholds are truncated, not rounded.
func decodeFilters(v any) models.SearchFilters {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.SearchFilters{}
	}
	var filters models.SearchFilters
	if n, ok := numberField(obj, "max_fees"); ok {
		fee := int(n)
		filters.MaxFee = &fee
	}
	if n, ok := numberField(obj, "max_price"); ok {
		price := int(n)
		filters.MaxPrice = &price
	}
	if n, ok := numberField(obj, "min_rating"); ok {
		rating := n
		filters.MinRating = &rating
	}
	if b, ok := obj["home_collection"].(bool); ok {
		home := b
		filters.HomeCollection = &home
	}
	return filters
}

func numberField(obj map[string]any, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	return n, ok
}
