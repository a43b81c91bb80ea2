package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ValueMode selects how multi-valued claims are flattened.
type ValueMode string

const (
	// ModeFirst keeps the first value of each property.
	ModeFirst ValueMode = "first"
	// ModeAll keeps every value, one row per value.
	ModeAll ValueMode = "all"
	// ModeSingleOnly keeps only properties that have exactly one value.
	ModeSingleOnly ValueMode = "single-only"
)

// Fact is one flattened claim: a property and one of its values, both
// resolved to human-readable labels where possible.
type Fact struct {
	Property string `json:"property"`
	Label    string `json:"label"`
	Value    string `json:"value"`
}

// FactsOptions configures claim flattening.
type FactsOptions struct {
	// Properties restricts output to these property IDs (e.g. P31).
	Properties []string
	// Mode defaults to ModeAll.
	Mode ValueMode
	// Language for property and value labels; defaults to the client's
	// configured language.
	Language string
}

// Facts returns the claims of an entity as [property, value] rows. Entity
// valued claims are resolved to labels with one follow-up lookup; time and
// coordinate values are normalized.
func (c *Client) Facts(ctx context.Context, raw string, opts *FactsOptions) ([]Fact, error) {
	id, err := c.ResolveEntity(ctx, raw)
	if err != nil {
		return nil, err
	}

	mode := ModeAll
	language := c.DefaultLanguage
	allowed := map[string]bool{}
	if opts != nil {
		if opts.Mode != "" {
			mode = opts.Mode
		}
		if opts.Language != "" {
			language = opts.Language
		}
		for _, p := range opts.Properties {
			allowed[strings.ToUpper(strings.TrimSpace(p))] = true
		}
	}

	entity, err := c.getEntity(ctx, id, "claims", "")
	if err != nil {
		return nil, err
	}
	claims := getMap(entity, "claims")

	properties := make([]string, 0, len(claims))
	for prop := range claims {
		if len(allowed) > 0 && !allowed[prop] {
			continue
		}
		properties = append(properties, prop)
	}
	sort.Slice(properties, func(i, j int) bool {
		return propertyNumber(properties[i]) < propertyNumber(properties[j])
	})

	type pending struct {
		property string
		value    string
		entityID string
	}

	rows := []pending{}
	needLabels := append([]string{}, properties...)

	for _, prop := range properties {
		values := []pending{}
		for _, item := range getSlice(claims, prop) {
			claim, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			snak := getMap(claim, "mainsnak")
			if snak == nil || getString(snak, "snaktype") != "value" {
				continue
			}
			text, entityID := flattenValue(getMap(snak, "datavalue"))
			if text == "" && entityID == "" {
				continue
			}
			values = append(values, pending{property: prop, value: text, entityID: entityID})
		}

		switch mode {
		case ModeFirst:
			if len(values) > 0 {
				values = values[:1]
			}
		case ModeSingleOnly:
			if len(values) != 1 {
				continue
			}
		}

		for _, v := range values {
			if v.entityID != "" {
				needLabels = append(needLabels, v.entityID)
			}
			rows = append(rows, v)
		}
	}

	labels, err := c.resolveLabels(ctx, needLabels, language)
	if err != nil {
		return nil, err
	}

	facts := make([]Fact, 0, len(rows))
	for _, row := range rows {
		fact := Fact{
			Property: row.property,
			Label:    labelOr(labels, row.property, row.property),
			Value:    row.value,
		}
		if row.entityID != "" {
			fact.Value = labelOr(labels, row.entityID, row.entityID)
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// flattenValue turns one datavalue into either plain text or, for entity
// references, an entity ID to be resolved to a label later.
func flattenValue(dv map[string]interface{}) (text, entityID string) {
	if dv == nil {
		return "", ""
	}
	switch getString(dv, "type") {
	case "string":
		return getString(dv, "value"), ""
	case "wikibase-entityid":
		v := getMap(dv, "value")
		if id := getString(v, "id"); id != "" {
			return "", id
		}
		return "", fmt.Sprintf("Q%d", int(getFloat(v, "numeric-id")))
	case "time":
		return formatTimeValue(getMap(dv, "value")), ""
	case "globecoordinate":
		v := getMap(dv, "value")
		return fmt.Sprintf("%v,%v", getFloat(v, "latitude"), getFloat(v, "longitude")), ""
	case "quantity":
		v := getMap(dv, "value")
		return strings.TrimPrefix(getString(v, "amount"), "+"), ""
	case "monolingualtext":
		return getString(getMap(dv, "value"), "text"), ""
	}
	if v, ok := dv["value"].(string); ok {
		return v, ""
	}
	return "", ""
}

// wikidataTimeRegex captures the date fields of a Wikidata time stamp.
// Fields below the stated precision are zeroed on the wire
// ("+1952-00-00T00:00:00Z" at year precision), so the stamp is not valid
// RFC 3339 and the fields are cut out positionally.
var wikidataTimeRegex = regexp.MustCompile(`^(\d{4,})-(\d{2})-(\d{2})T`)

// formatTimeValue renders a Wikidata time value at its stated precision.
// Precision 11 is day, 10 month, 9 and below year granularity.
func formatTimeValue(v map[string]interface{}) string {
	raw := getString(v, "time")
	if raw == "" {
		return ""
	}
	// Years before the common era keep the raw representation.
	if strings.HasPrefix(raw, "-") {
		return raw
	}
	m := wikidataTimeRegex.FindStringSubmatch(strings.TrimPrefix(raw, "+"))
	if m == nil {
		return raw
	}
	year, month, day := m[1], m[2], m[3]
	switch precision := int(getFloat(v, "precision")); {
	case precision >= 11 && month != "00" && day != "00":
		return year + "-" + month + "-" + day
	case precision >= 10 && month != "00":
		return year + "-" + month
	default:
		return year
	}
}

// resolveLabels fetches labels for entity and property IDs, chunked to the
// API's ids-per-request cap.
func (c *Client) resolveLabels(ctx context.Context, ids []string, language string) (map[string]string, error) {
	unique := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	labels := make(map[string]string, len(unique))
	for start := 0; start < len(unique); start += maxEntitiesPerRequest {
		end := start + maxEntitiesPerRequest
		if end > len(unique) {
			end = len(unique)
		}
		if err := c.fetchLabels(ctx, unique[start:end], language, labels); err != nil {
			return nil, err
		}
	}
	return labels, nil
}

func (c *Client) fetchLabels(ctx context.Context, ids []string, language string, out map[string]string) error {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", strings.Join(ids, "|"))
	params.Set("props", "labels")
	params.Set("languages", language)
	params.Set("languagefallback", "1")

	data, err := c.query(ctx, params)
	if err != nil {
		return err
	}

	entities := getMap(data, "entities")
	for id, raw := range entities {
		entity, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		entityLabels := getMap(entity, "labels")
		if label := getMap(entityLabels, language); label != nil {
			out[id] = getString(label, "value")
			continue
		}
		// Language fallback may answer in another language; take any.
		for _, raw := range entityLabels {
			if label, ok := raw.(map[string]interface{}); ok {
				out[id] = getString(label, "value")
				break
			}
		}
	}
	return nil
}

func labelOr(labels map[string]string, id, fallback string) string {
	if label, ok := labels[id]; ok && label != "" {
		return label
	}
	return fallback
}

func propertyNumber(prop string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(prop, "P"))
	if err != nil {
		return 0
	}
	return n
}
