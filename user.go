package rtrest

import (
	"regexp"

	"rtrest/types"
)

// RT aligns the continuation lines of free text fields under the value,
// so the indent depends on the length of the key.
var userTextContinuation = regexp.MustCompile(`^\s+(.*)$`)

var userGrammar = grammar{
	entity:        "user",
	fatalComments: true,
	continuations: map[string]*regexp.Regexp{
		"ContactInfo": userTextContinuation,
		"Comments":    userTextContinuation,
		"Signature":   userTextContinuation,
	},
}

type userDecoder struct {
	u *types.User
	// Lines of the multi-line fields, by key.
	text map[string][]string
}

func (d *userDecoder) customField(name, value string) {
	d.u.CustomFields[name] = value
}

func (d *userDecoder) continuation(key string, match []string) error {
	d.text[key] = append(d.text[key], match[1])
	return nil
}

func (d *userDecoder) field(key, value string) error {
	var err error
	u := d.u
	switch key {
	case "id":
		u.ID, err = parseIdentifier("user", value)
	case "Name":
		u.Name = value
	case "EmailAddress":
		u.EmailAddress = value
	case "RealName":
		u.RealName = value
	case "NickName":
		u.NickName = value
	case "Gecos":
		u.Gecos = value
	case "Organization":
		u.Organization = value
	case "Address1":
		u.Address1 = value
	case "Address2":
		u.Address2 = value
	case "City":
		u.City = value
	case "State":
		u.State = value
	case "Zip":
		u.Zip = value
	case "Country":
		u.Country = value
	case "HomePhone":
		u.HomePhone = value
	case "WorkPhone":
		u.WorkPhone = value
	case "MobilePhone":
		u.MobilePhone = value
	case "PagerPhone":
		u.PagerPhone = value
	case "ContactInfo", "Comments", "Signature":
		d.text[key] = []string{value}
	case "Lang":
		u.Lang = value
	case "Privileged":
		u.Privileged, err = parseBool("user privileged status", value)
	case "Disabled":
		u.Disabled, err = parseBool("user disabled status", value)
	}
	return err
}

// DecodeUser reads a user properties response.
func DecodeUser(body string) (*types.User, error) {
	u := &types.User{CustomFields: map[string]string{}}
	d := &userDecoder{u: u, text: make(map[string][]string)}
	if err := userGrammar.scan(body, d); err != nil {
		return nil, err
	}
	if u.ID == 0 {
		return nil, newError(MalformedIdentifier, "", "user record without id")
	}
	u.ContactInfo = joinLines(d.text["ContactInfo"])
	u.Comments = joinLines(d.text["Comments"])
	u.Signature = joinLines(d.text["Signature"])
	return u, nil
}

// DecodeUsers reads a long format user search response. Order is kept.
func DecodeUsers(body string) ([]*types.User, error) {
	blocks := splitRecords(body)
	users := make([]*types.User, 0, len(blocks))
	for _, block := range blocks {
		u, err := DecodeUser(block)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// EncodeUser always fails: RT users cannot be created through this package.
func EncodeUser(u *types.User) (string, error) {
	return defaultEncoder.EncodeUser(u)
}

// EncodeUserUpdate builds the body of a user edit request holding only
// the fields of u that differ from old.
func EncodeUserUpdate(u, old *types.User) (string, error) {
	return defaultEncoder.EncodeUserUpdate(u, old)
}

func (e Encoder) EncodeUser(u *types.User) (string, error) {
	return "", newError(UnsupportedOperation, "", "creating users is not supported")
}

func (e Encoder) EncodeUserUpdate(u, old *types.User) (string, error) {
	if old == nil {
		return "", newError(MissingPriorSnapshot, "", "no existing user provided for user update")
	}

	var w fieldWriter
	strs := []struct {
		key       string
		cur, prev string
	}{
		{"Name", u.Name, old.Name},
		{"EmailAddress", u.EmailAddress, old.EmailAddress},
		{"RealName", u.RealName, old.RealName},
		{"NickName", u.NickName, old.NickName},
		{"Gecos", u.Gecos, old.Gecos},
		{"Organization", u.Organization, old.Organization},
		{"Address1", u.Address1, old.Address1},
		{"Address2", u.Address2, old.Address2},
		{"City", u.City, old.City},
		{"State", u.State, old.State},
		{"Zip", u.Zip, old.Zip},
		{"Country", u.Country, old.Country},
		{"HomePhone", u.HomePhone, old.HomePhone},
		{"WorkPhone", u.WorkPhone, old.WorkPhone},
		{"MobilePhone", u.MobilePhone, old.MobilePhone},
		{"PagerPhone", u.PagerPhone, old.PagerPhone},
	}
	for _, f := range strs {
		if f.cur != f.prev {
			w.field(f.key, f.cur)
		}
	}

	texts := []struct {
		key       string
		cur, prev string
	}{
		{"ContactInfo", u.ContactInfo, old.ContactInfo},
		{"Comments", u.Comments, old.Comments},
		{"Signature", u.Signature, old.Signature},
	}
	for _, f := range texts {
		if f.cur != f.prev {
			w.textField(f.key, f.cur)
		}
	}

	if u.Lang != old.Lang {
		w.field("Lang", u.Lang)
	}
	if u.Privileged != old.Privileged {
		w.boolField("Privileged", u.Privileged)
	}
	if u.Disabled != old.Disabled {
		w.boolField("Disabled", u.Disabled)
	}
	w.customFields(e.User.or(OldStyleNotation), u.CustomFields)
	return w.String(), nil
}
