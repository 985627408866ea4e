package domain

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	IsAdmin      bool   `json:"isAdmin"`
	Street       string `json:"street"`
	Apartment    string `json:"apartment"`
	Zip          string `json:"zip"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// UserRef is the populated form of a user embedded in other documents.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
