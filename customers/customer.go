package customers

// Customer is the fixed projection of a customer record returned by the
// gateway. The JSON keys mirror the underlying column names and are part of
// the external contract consumed by the UI.
type Customer struct {
	AccountNo      string `json:"no_"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Addr1          string `json:"addr1"`
	Addr2          string `json:"addr2"`
	PostalCode     string `json:"pc"`
	PBCode         string `json:"pb"`
	FormattedPhone string `json:"formatted_phone"`
	Email          string `json:"email"`
}
