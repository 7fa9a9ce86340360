package model

// Account represents a top-level advertiser account.
type Account struct {
	ID           string `yaml:"id" bson:"id"`
	Email        string `yaml:"email" bson:"email"`
	CreationDate string `yaml:"creationDate" bson:"creationDate"` // ISO 8601 date (YYYY-MM-DD)
}

// Profile represents a marketplace profile owned by an account.
type Profile struct {
	ID          string `yaml:"id" bson:"id"`
	AccountID   string `yaml:"accountId" bson:"accountId"`
	Country     string `yaml:"country" bson:"country"`
	Marketplace string `yaml:"marketplace" bson:"marketplace"`
}

// Campaign represents an advertising campaign run under a profile.
type Campaign struct {
	ID        string  `yaml:"id" bson:"id"`
	ProfileID string  `yaml:"profileId" bson:"profileId"`
	Clicks    int64   `yaml:"clicks" bson:"clicks"`
	Cost      float64 `yaml:"cost" bson:"cost"`
	Date      string  `yaml:"date" bson:"date"`
}

// Dataset is the complete, already-loaded collection of every entity type.
type Dataset struct {
	Accounts  []Account  `yaml:"accounts"`
	Profiles  []Profile  `yaml:"profiles"`
	Campaigns []Campaign `yaml:"campaigns"`
}
