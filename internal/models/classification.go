package models

import "strings"

// Classification is the user-curated metadata attached to a description key
// in the mapping store. All fields are optional.
type Classification struct {
	AccountType string   `yaml:"account_type,omitempty" json:"account_type,omitempty"`
	Category1   string   `yaml:"category1,omitempty" json:"category1,omitempty"`
	Category2   string   `yaml:"category2,omitempty" json:"category2,omitempty"`
	Category3   string   `yaml:"category3,omitempty" json:"category3,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Payer       string   `yaml:"payer,omitempty" json:"payer,omitempty"`
	Payee       string   `yaml:"payee,omitempty" json:"payee,omitempty"`
}

// TagsString returns the tag set joined for the combined artifact.
func (c Classification) TagsString() string {
	return strings.Join(c.Tags, ",")
}

// Apply writes the classification onto a transaction row, recording the
// store key that produced it. Classification is derived data and can be
// recomputed by re-running the pipeline at any time.
func (c Classification) Apply(t *Transaction, matchedKey string) {
	t.AccountTypeClass = c.AccountType
	t.Category1 = c.Category1
	t.Category2 = c.Category2
	t.Category3 = c.Category3
	t.Tags = c.TagsString()
	t.Payer = c.Payer
	t.Payee = c.Payee
	t.MappedDescription = matchedKey
}
