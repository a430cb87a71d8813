package lambda

// Request represents a normalized HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Response represents a normalized HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// RequestKind enumerates the operations the handler dispatches to.
// Dispatch is by HTTP method and presence of a path identifier only.
type RequestKind int

const (
	// KindMalformed marks a boundary contract violation (no method or path)
	KindMalformed RequestKind = iota
	// KindCreate is POST /users
	KindCreate
	// KindList is GET /users
	KindList
	// KindGet is GET /users/{id}
	KindGet
	// KindUpdate is PUT /users/{id}
	KindUpdate
	// KindDelete is DELETE /users/{id}
	KindDelete
	// KindMissingID is PUT or DELETE without an identifier
	KindMissingID
	// KindUnsupported is any other HTTP method
	KindUnsupported
)

// Classify maps a normalized request onto a request kind. There is no
// fallthrough: every method/identifier combination lands on exactly one
// kind.
func Classify(req *Request) RequestKind {
	if req == nil || req.Method == "" || req.Path == "" {
		return KindMalformed
	}

	hasID := req.UserID() != ""

	switch req.Method {
	case "POST":
		return KindCreate
	case "GET":
		if hasID {
			return KindGet
		}
		return KindList
	case "PUT":
		if hasID {
			return KindUpdate
		}
		return KindMissingID
	case "DELETE":
		if hasID {
			return KindDelete
		}
		return KindMissingID
	default:
		return KindUnsupported
	}
}

// UserID extracts the path identifier, preferring the gateway's parsed
// path parameters and falling back to the raw path.
func (r *Request) UserID() string {
	if id := r.PathParams["id"]; id != "" {
		return id
	}

	// Fallback for gateways that pass the raw path only
	const prefix = "/users/"
	if len(r.Path) > len(prefix) && r.Path[:len(prefix)] == prefix {
		id := r.Path[len(prefix):]
		for i := 0; i < len(id); i++ {
			if id[i] == '/' {
				return id[:i]
			}
		}
		return id
	}

	return ""
}
