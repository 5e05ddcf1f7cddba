package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromJSON_WrappedShape(t *testing.T) {
	p := FromJSON(map[string]any{
		"extracted_fields": map[string]any{
			"name": "John Smith",
			"ssn":  "123-45-6789",
		},
		"source_file": "doc.pdf",
	})

	fields := p.fields()
	assert.Equal(t, map[string]string{
		"name": "John Smith",
		"ssn":  "123-45-6789",
	}, fields)
}

func TestFromJSON_CustomerPolicyShape(t *testing.T) {
	p := FromJSON(map[string]any{
		"customer_info": map[string]any{
			"name":  "John Smith",
			"email": "john@acmecorp.com",
		},
		"policy_info": map[string]any{
			"policy_number": "ABC1234567",
			"email":         "policy@acmecorp.com",
		},
	})

	fields := p.fields()
	assert.Equal(t, "John Smith", fields["name"])
	assert.Equal(t, "ABC1234567", fields["policy_number"])
	// Policy values win key collisions.
	assert.Equal(t, "policy@acmecorp.com", fields["email"])
}

func TestFromJSON_FlatShape(t *testing.T) {
	p := FromJSON(map[string]any{
		"name":   "John Smith",
		"count":  float64(3),
		"absent": nil,
	})

	fields := p.fields()
	assert.Equal(t, "John Smith", fields["name"])
	assert.Equal(t, "3", fields["count"])
	assert.Empty(t, fields["absent"])
}

func TestPayload_NilFlat(t *testing.T) {
	assert.Empty(t, Flat(nil).fields())
	assert.Empty(t, Wrapped(nil).fields())
	assert.Empty(t, CustomerPolicy(nil, nil).fields())
}
