package jira

// DateTime is the triple format Service Desk uses for every timestamp.
type DateTime struct {
	ISO8601  string `json:"iso8601"`
	Jira     string `json:"jira"`
	Friendly string `json:"friendly"`
}

type Status struct {
	Status         string   `json:"status"`
	StatusCategory string   `json:"statusCategory"`
	StatusDate     DateTime `json:"statusDate"`
}

type RequestFieldValue struct {
	FieldID string      `json:"fieldId"`
	Label   string      `json:"label"`
	Value   interface{} `json:"value"`
}

// Request is a customer request as returned by the Service Desk API.
type Request struct {
	IssueID       string              `json:"issueId"`
	IssueKey      string              `json:"issueKey"`
	RequestTypeID string              `json:"requestTypeId"`
	ServiceDeskID string              `json:"serviceDeskId"`
	CreatedDate   DateTime            `json:"createdDate"`
	RequestFields []RequestFieldValue `json:"requestFieldValues"`
	CurrentStatus Status              `json:"currentStatus"`
	Links         struct {
		Web string `json:"web"`
	} `json:"_links"`
}

type createRequestPayload struct {
	ServiceDeskID      string            `json:"serviceDeskId"`
	RequestTypeID      string            `json:"requestTypeId"`
	RequestFieldValues map[string]string `json:"requestFieldValues"`
}

type apiError struct {
	ErrorMessage  string   `json:"errorMessage"`
	ErrorMessages []string `json:"errorMessages"`
}

func (e *apiError) message() string {
	if e.ErrorMessage != "" {
		return e.ErrorMessage
	}
	if len(e.ErrorMessages) > 0 {
		return e.ErrorMessages[0]
	}
	return ""
}
