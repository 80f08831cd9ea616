package tracing

// Span names.
const (
	SpanRegistrationSubmit = "registration.submit"
	SpanHTTPPrefix         = "http "
)

// Attribute keys. Values never carry personal data.
const (
	AttrRegistrationAttempt = "registration.attempt"
	AttrRegistrationResult  = "registration.result"

	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"
)

// Registration results.
const (
	ResultSucceeded = "succeeded"
	ResultRejected  = "rejected"
	ResultFault     = "fault"
)
