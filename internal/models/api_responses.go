package models

import "encoding/xml"

// LocateResponse is the rendered result of a locate request.
type LocateResponse struct {
	XMLName        xml.Name  `json:"-" xml:"locationResponse"`
	CallNo         string    `json:"callno" xml:"callno"`
	ResolvedCallNo string    `json:"resolved_callno,omitempty" xml:"resolvedCallno,omitempty"` // After redirects
	Owner          string    `json:"owner" xml:"owner"`
	Collection     string    `json:"collection,omitempty" xml:"collection,omitempty"`
	Lang           string    `json:"lang" xml:"lang"`
	Outcome        string    `json:"outcome" xml:"outcome"`
	Available      bool      `json:"available" xml:"available"`
	Window         string    `json:"window,omitempty" xml:"window,omitempty"`
	Location       *Location `json:"location,omitempty" xml:"location,omitempty"`
}

// Found returns true if the response carries a location.
func (r *LocateResponse) Found() bool {
	return r.Location != nil
}

// BatchLocateRequest asks for several call numbers of one owner at once.
type BatchLocateRequest struct {
	Owner      string   `json:"owner"`
	Collection string   `json:"collection,omitempty"` // Applies to every call number
	Lang       string   `json:"lang"`
	CallNos    []string `json:"callnos"`
}

// BatchLocateItem is the outcome for one call number of a batch.
type BatchLocateItem struct {
	CallNo   string    `json:"callno"`
	Outcome  string    `json:"outcome"`
	Location *Location `json:"location,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// BatchLocateResponse contains per-item results in request order.
type BatchLocateResponse struct {
	Owner   string            `json:"owner"`
	Results []BatchLocateItem `json:"results"`
}
