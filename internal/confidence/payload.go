// Package confidence computes the ensemble confidence report for an
// extracted payload: five independent sub-scores, a weighted overall
// score, risk flags and review recommendations.
package confidence

import (
	"fmt"
	"strings"
)

// Payload is the scorer's input in one of three recognized shapes.
// Callers hand extracted data over in inconsistent envelopes, so the
// shape is made explicit here and normalized exactly once.
type Payload struct {
	shape    shape
	flat     map[string]string
	customer map[string]string
	policy   map[string]string
}

type shape int

const (
	shapeFlat shape = iota
	shapeWrapped
	shapeCustomerPolicy
)

// Flat wraps a plain field map.
func Flat(fields map[string]string) Payload {
	return Payload{shape: shapeFlat, flat: fields}
}

// Wrapped wraps a payload whose fields arrived under an
// "extracted_fields" envelope.
func Wrapped(fields map[string]string) Payload {
	return Payload{shape: shapeWrapped, flat: fields}
}

// CustomerPolicy wraps the two-section customer/policy envelope.
// Policy fields win on key collisions, matching merge order.
func CustomerPolicy(customer, policy map[string]string) Payload {
	return Payload{shape: shapeCustomerPolicy, customer: customer, policy: policy}
}

// FromJSON sniffs a decoded JSON object for the recognized envelope
// keys and builds the corresponding Payload. Objects with no
// recognized envelope are treated as already flat; this never fails.
func FromJSON(data map[string]any) Payload {
	if inner, ok := data["extracted_fields"].(map[string]any); ok {
		return Wrapped(stringify(inner))
	}
	customer, hasCustomer := data["customer_info"].(map[string]any)
	policy, hasPolicy := data["policy_info"].(map[string]any)
	if hasCustomer || hasPolicy {
		return CustomerPolicy(stringify(customer), stringify(policy))
	}
	return Flat(stringify(data))
}

// fields flattens the payload into one canonical field map.
func (p Payload) fields() map[string]string {
	switch p.shape {
	case shapeCustomerPolicy:
		merged := make(map[string]string, len(p.customer)+len(p.policy))
		for k, v := range p.customer {
			merged[k] = v
		}
		for k, v := range p.policy {
			merged[k] = v
		}
		return merged
	default:
		if p.flat == nil {
			return map[string]string{}
		}
		return p.flat
	}
}

func stringify(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		default:
			out[k] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return out
}
