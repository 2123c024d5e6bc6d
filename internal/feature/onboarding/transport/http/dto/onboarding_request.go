// Package dto はオンボーディングAPIのリクエスト・レスポンスを定義します。
package dto

import "erp_backend/internal/feature/onboarding/usecase"

// PersonalDetails はウィザードのステップ1です。
type PersonalDetails struct {
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName"`
	Mobile    *string `json:"mobile"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	Password  string  `json:"password"`
}

// AddressDetails はウィザードのステップ2です。
type AddressDetails struct {
	WebsiteAddress *string `json:"websiteAddress"`
	StreetAddress  *string `json:"streetAddress"`
	City           *string `json:"city"`
	TownVillage    *string `json:"townVillage"`
	Country        *string `json:"country"`
	State          *string `json:"state"`
	PostalCode     *string `json:"postalCode"`
	GSTNo          *string `json:"gstNo"`
	PANNo          *string `json:"panNo"`
	AadharNo       *string `json:"aadharNo"`
}

// PlanDetails はウィザードのステップ3です。
type PlanDetails struct {
	PlanID string `json:"planId"`
	Users  int    `json:"users"`
}

// CustomizeDetails はウィザードのステップ4です。
type CustomizeDetails struct {
	OrganizationName    string  `json:"organizationName"`
	OrganizationDetails *string `json:"organizationDetails"`
	Currency            *string `json:"currency"`
	ClientType          *string `json:"clientType"`
}

// RegisterClientReq は/api/client-onboarding/registerのリクエストボディです。
// セクションが欠けていてもデコードは成功し、必須チェックはユースケースで行います。
type RegisterClientReq struct {
	PersonalDetails  *PersonalDetails  `json:"personalDetails"`
	AddressDetails   *AddressDetails   `json:"addressDetails"`
	PlanDetails      *PlanDetails      `json:"planDetails"`
	CustomizeDetails *CustomizeDetails `json:"customizeDetails"`
}

// RegisterClientRes は成功時のdataです。
type RegisterClientRes struct {
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	Message   string `json:"message"`
}

// ToInput はリクエストをユースケース入力へ変換します。
func (r *RegisterClientReq) ToInput() usecase.RegisterClientInput {
	var in usecase.RegisterClientInput
	if p := r.PersonalDetails; p != nil {
		in.Personal = usecase.PersonalDetails{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Mobile:    p.Mobile,
			Email:     p.Email,
			Username:  p.Username,
			Password:  p.Password,
		}
	}
	if a := r.AddressDetails; a != nil {
		in.Address = usecase.AddressDetails{
			WebsiteAddress: a.WebsiteAddress,
			StreetAddress:  a.StreetAddress,
			City:           a.City,
			TownVillage:    a.TownVillage,
			Country:        a.Country,
			State:          a.State,
			PostalCode:     a.PostalCode,
			GSTNo:          a.GSTNo,
			PANNo:          a.PANNo,
			AadharNo:       a.AadharNo,
		}
	}
	if pl := r.PlanDetails; pl != nil {
		in.Plan = usecase.PlanDetails{PlanID: pl.PlanID, Users: pl.Users}
	}
	if c := r.CustomizeDetails; c != nil {
		in.Customize = usecase.CustomizeDetails{
			OrganizationName:    c.OrganizationName,
			OrganizationDetails: c.OrganizationDetails,
			Currency:            c.Currency,
			ClientType:          c.ClientType,
		}
	}
	return in
}
