package types

import "fmt"

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	RealName     string `json:"realName"`
	NickName     string `json:"nickName"`
	Gecos        string `json:"gecos"`
	Organization string `json:"organization"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	HomePhone    string `json:"homePhone"`
	WorkPhone    string `json:"workPhone"`
	MobilePhone  string `json:"mobilePhone"`
	PagerPhone   string `json:"pagerPhone"`
	// Multi-line free text
	ContactInfo  string            `json:"contactInfo"`
	Comments     string            `json:"comments"`
	Signature    string            `json:"signature"`
	Lang         string            `json:"lang"`
	Privileged   bool              `json:"privileged"`
	Disabled     bool              `json:"disabled"`
	CustomFields map[string]string `json:"customFields"`
}

func (u *User) String() string {
	return fmt.Sprintf("user/%d: %s", u.ID, u.Name)
}
