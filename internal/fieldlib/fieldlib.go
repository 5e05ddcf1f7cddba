// Package fieldlib holds the static pattern, keyword and context-word
// registry that every extraction technique reads from. The built-in
// library is immutable after construction; callers that need custom
// fields derive an extended copy with Extend.
package fieldlib

import (
	"regexp"
	"strings"
)

// Kind is a recognized semantic field category. Requested field names
// are normalized and mapped onto a Kind before any table lookup;
// unrecognized names map to KindGeneric and degrade to empty lookups
// rather than errors.
type Kind string

const (
	KindName          Kind = "name"
	KindEmail         Kind = "email"
	KindPhone         Kind = "phone"
	KindSSN           Kind = "ssn"
	KindAddress       Kind = "address"
	KindDate          Kind = "date"
	KindAmount        Kind = "amount"
	KindEmployeeID    Kind = "employee_id"
	KindPolicyNumber  Kind = "policy_number"
	KindAccountNumber Kind = "account_number"
	KindGeneric       Kind = "generic"
)

// Normalize lowercases a requested field name and folds spaces to
// underscores. The caller's original spelling is preserved as the
// output key; normalization is only for table lookup.
func Normalize(field string) string {
	f := strings.ToLower(strings.TrimSpace(field))
	return strings.ReplaceAll(f, " ", "_")
}

// KindOf maps a requested field name onto its Kind.
func KindOf(field string) Kind {
	switch Normalize(field) {
	case "name", "full_name", "customer_name", "employee_name", "insured_name", "first_name", "last_name":
		return KindName
	case "email", "e-mail", "email_address":
		return KindEmail
	case "phone", "phone_number", "telephone", "mobile", "cell":
		return KindPhone
	case "ssn", "social_security_number":
		return KindSSN
	case "address", "street_address", "mailing_address":
		return KindAddress
	case "date", "date_of_birth", "dob", "birth_date", "effective_date", "expiration_date":
		return KindDate
	case "amount", "salary", "premium", "coverage_amount", "benefit_amount":
		return KindAmount
	case "employee_id", "emp_id", "staff_id", "employee_number":
		return KindEmployeeID
	case "policy_number", "policy_no", "contract_number":
		return KindPolicyNumber
	case "account_number", "account_no":
		return KindAccountNumber
	}
	return KindGeneric
}

// entry holds the compiled tables for one custom field.
type entry struct {
	patterns  []*regexp.Regexp
	keywords  []string
	context   []string
	validator *regexp.Regexp
}

// Library is the read-only registry of discovery patterns, keyword
// aliases, context words and strict validators. Safe for concurrent
// use; no method mutates the receiver.
type Library struct {
	patterns   map[Kind][]*regexp.Regexp
	keywords   map[Kind][]string
	context    map[Kind][]string
	validators map[Kind]*regexp.Regexp
	custom     map[string]entry
}

var std = newStandard()

// Default returns the built-in library.
func Default() *Library { return std }

// Patterns returns the ordered discovery patterns for a field, most
// specific first. Unknown fields yield nil.
func (l *Library) Patterns(field string) []*regexp.Regexp {
	if e, ok := l.custom[Normalize(field)]; ok {
		return e.patterns
	}
	return l.patterns[KindOf(field)]
}

// Keywords returns the keyword aliases for a field. Unknown fields
// yield nil.
func (l *Library) Keywords(field string) []string {
	if e, ok := l.custom[Normalize(field)]; ok {
		return e.keywords
	}
	return l.keywords[KindOf(field)]
}

// ContextWords returns words that plausibly co-occur with the field in
// natural sentences. Unknown fields yield nil.
func (l *Library) ContextWords(field string) []string {
	if e, ok := l.custom[Normalize(field)]; ok {
		return e.context
	}
	return l.context[KindOf(field)]
}

// Validator returns the anchored validation pattern for a field, or
// nil if the field has none.
func (l *Library) Validator(field string) *regexp.Regexp {
	if e, ok := l.custom[Normalize(field)]; ok {
		return e.validator
	}
	return l.validators[KindOf(field)]
}

// Validate reports whether value matches the strict format for the
// field. Name fields additionally require at least two words. Fields
// without a validator are accepted as-is.
func (l *Library) Validate(field, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	re := l.Validator(field)
	if re == nil {
		return true
	}
	if !re.MatchString(value) {
		return false
	}
	if KindOf(field) == KindName {
		return len(strings.Fields(value)) >= 2
	}
	return true
}

func newStandard() *Library {
	return &Library{
		patterns: map[Kind][]*regexp.Regexp{
			KindName: {
				regexp.MustCompile(`(?i:full name|customer name|employee name|insured name|name)[: \t]*([A-Za-z][A-Za-z .'-]{1,49})`),
				regexp.MustCompile(`(?i:first name|last name)[: \t]*([A-Za-z][A-Za-z .'-]{1,29})`),
				regexp.MustCompile(`(?i:name)[: \t]*([A-Z][a-z]+(?: [A-Z][a-z]+){1,2})`),
			},
			KindEmail: {
				regexp.MustCompile(`(?i:e-?mail(?: address)?)[: \t]*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`),
				regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			},
			KindPhone: {
				regexp.MustCompile(`(?i:phone|telephone|mobile|cell)[: \t]*(\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4})`),
				regexp.MustCompile(`\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`),
			},
			KindSSN: {
				regexp.MustCompile(`(?i:ssn|social security(?: number)?)[: \t]*(\d{3}-\d{2}-\d{4})`),
				regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			},
			KindAddress: {
				regexp.MustCompile(`(?i:address|street|residence)[: \t]*(\d+ [A-Za-z ,.]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)[A-Za-z0-9 ,.]*)`),
				regexp.MustCompile(`\d+ [A-Za-z ,.]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)\b`),
			},
			KindDate: {
				regexp.MustCompile(`(?i:date of birth|birth date|date|born|dob)[: \t]*(\d{1,2}[/-]\d{1,2}[/-]\d{4})`),
				regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
			},
			KindAmount: {
				regexp.MustCompile(`(?i:amount|salary|premium|coverage)[: \t]*(\$?[\d,]+(?:\.\d{2})?)`),
				regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
			},
			KindEmployeeID: {
				regexp.MustCompile(`(?i:employee id|emp id|staff id|id)[: \t]*([A-Z]{2,4}\d{3,8})`),
				regexp.MustCompile(`\b[A-Z]{2,4}\d{3,8}\b`),
			},
			KindPolicyNumber: {
				regexp.MustCompile(`(?i:policy number|policy no|contract number)[: \t]*([A-Z]{2,3}\d{6,10})`),
				regexp.MustCompile(`\b[A-Z]{2,3}\d{6,10}\b`),
			},
			KindAccountNumber: {
				regexp.MustCompile(`(?i:account number|account no|acct)[: \t]*(\d{8,15}|ACC\d{6,10})`),
				regexp.MustCompile(`\b\d{8,15}\b`),
			},
		},
		keywords: map[Kind][]string{
			KindName:          {"name", "full name", "customer name", "employee name", "insured name"},
			KindEmail:         {"email", "e-mail", "email address", "electronic mail"},
			KindPhone:         {"phone", "telephone", "mobile", "cell phone", "contact number"},
			KindSSN:           {"ssn", "social security", "social security number", "tax id"},
			KindAddress:       {"address", "street address", "mailing address", "residence"},
			KindDate:          {"date", "date of birth", "birth date", "dob"},
			KindAmount:        {"amount", "salary", "premium", "coverage amount", "benefit amount"},
			KindEmployeeID:    {"employee id", "emp id", "employee number", "staff id"},
			KindPolicyNumber:  {"policy number", "policy no", "contract number"},
			KindAccountNumber: {"account number", "account no"},
		},
		context: map[Kind][]string{
			KindName:          {"named", "called", "known as", "individual", "person"},
			KindEmail:         {"contact", "reach", "correspondence", "electronic"},
			KindPhone:         {"call", "contact", "reach", "dial", "number"},
			KindSSN:           {"identification", "tax", "social", "security"},
			KindAddress:       {"located", "residing", "mailing", "street", "city"},
			KindDate:          {"born", "age", "year", "month", "day"},
			KindAmount:        {"dollars", "payment", "cost", "value", "worth"},
			KindEmployeeID:    {"identification", "badge", "staff", "employee"},
			KindPolicyNumber:  {"contract", "agreement", "coverage", "insurance"},
			KindAccountNumber: {"account", "banking", "deposit"},
		},
		validators: map[Kind]*regexp.Regexp{
			KindName:          regexp.MustCompile(`^[A-Za-z ]{2,50}$`),
			KindEmail:         regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`),
			KindPhone:         regexp.MustCompile(`^\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}$`),
			KindSSN:           regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`),
			KindDate:          regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{4}$|^\d{4}[/-]\d{1,2}[/-]\d{1,2}$`),
			KindAmount:        regexp.MustCompile(`^\$?[\d,]+(?:\.\d{2})?$`),
			KindEmployeeID:    regexp.MustCompile(`^[A-Z]{2,4}\d{3,8}$|^\d{6,10}$|^EMP\d{3,8}$`),
			KindPolicyNumber:  regexp.MustCompile(`^[A-Z]{2,3}\d{6,10}$|^POL\d{6,8}$`),
			KindAccountNumber: regexp.MustCompile(`^\d{8,15}$|^ACC\d{6,10}$`),
		},
	}
}
