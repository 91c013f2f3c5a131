// Package models defines the data records persisted by the dashboard service.
package models

// Website configuration states
const (
	StateConfiguring = 1
	StateLive        = 2
)

type User struct {
	Username  string  `json:"username"`
	UserID    string  `json:"userId"`
	Passkey   string  `json:"passkey,omitempty"`
	CreatedAt string  `json:"createdAt"`
	LastLogin *string `json:"lastLogin"`
}

type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

type Submission struct {
	Timestamp        string      `json:"timestamp"`
	BrandName        string      `json:"brandName"`
	WebsiteType      string      `json:"websiteType"`
	Colors           ColorScheme `json:"colors"`
	ReferenceWebsite string      `json:"referenceWebsite"`
}

type ChangeRequest struct {
	Timestamp string `json:"timestamp"`
	Changes   string `json:"changes"`
	Status    string `json:"status"`
}

type WebsiteConfig struct {
	UserID           string          `json:"userId"`
	State            int             `json:"state"`
	WebsiteURL       string          `json:"websiteUrl"`
	PreviewImageURL  string          `json:"previewImageUrl"`
	BrandName        string          `json:"brandName"`
	WebsiteType      string          `json:"websiteType"`
	Colors           ColorScheme     `json:"colors"`
	ReferenceWebsite string          `json:"referenceWebsite"`
	Submissions      []Submission    `json:"submissions"`
	Queries          []ChangeRequest `json:"queries"`
	LastUpdated      string          `json:"lastUpdated"`
}

type MetricEntry struct {
	Value       float64 `json:"value"`
	Change      float64 `json:"change"`
	LastUpdated string  `json:"lastUpdated"`
}

// MetricSnapshot holds the current value and percent change for the
// fixed dashboard metric set. The email_stats key mirrors the user's
// email marketing stats so the dashboard stays in sync.
type MetricSnapshot struct {
	Sessions       MetricEntry `json:"sessions"`
	TotalSales     MetricEntry `json:"total_sales"`
	Orders         MetricEntry `json:"orders"`
	ConversionRate MetricEntry `json:"conversion_rate"`
	EmailStats     *EmailStats `json:"email_stats,omitempty"`
}

// Entry returns the snapshot entry for a metric key, or false for an
// unknown key.
func (s *MetricSnapshot) Entry(key string) (MetricEntry, bool) {
	switch key {
	case "sessions":
		return s.Sessions, true
	case "total_sales":
		return s.TotalSales, true
	case "orders":
		return s.Orders, true
	case "conversion_rate":
		return s.ConversionRate, true
	}
	return MetricEntry{}, false
}

// SetEntry overwrites the snapshot entry for a metric key.
func (s *MetricSnapshot) SetEntry(key string, entry MetricEntry) bool {
	switch key {
	case "sessions":
		s.Sessions = entry
	case "total_sales":
		s.TotalSales = entry
	case "orders":
		s.Orders = entry
	case "conversion_rate":
		s.ConversionRate = entry
	default:
		return false
	}
	return true
}

type HistoricalEntry struct {
	Date       string  `json:"date"`
	Sessions   float64 `json:"sessions"`
	Sales      float64 `json:"sales"`
	Orders     float64 `json:"orders"`
	Conversion float64 `json:"conversion"`
}

type EmailStats struct {
	Sent        float64 `json:"sent"`
	Total       float64 `json:"total"`
	LastUpdated string  `json:"lastUpdated"`
}

type EmailSuggestion struct {
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	Suggestion string `json:"suggestion"`
	Timestamp  string `json:"timestamp"`
}

type LogoNote struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Status    string `json:"status,omitempty"`
}

type LogoPreference struct {
	UserID      string     `json:"userId"`
	State       int        `json:"state"`
	LogoURL     *string    `json:"logoUrl"`
	LogoType    string     `json:"logoType"`
	Notes       []LogoNote `json:"notes"`
	LastUpdated string     `json:"lastUpdated"`
}

type NichePreference struct {
	Niche     string `json:"niche"`
	Timestamp string `json:"timestamp"`
}

type InstagramMarketing struct {
	AccountsReached float64           `json:"accountsReached"`
	LeadsConverted  float64           `json:"leadsConverted"`
	Preferences     []NichePreference `json:"preferences"`
	LastUpdated     string            `json:"lastUpdated"`
}

type MeetingInfo struct {
	Heading      string `json:"heading"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	DateTime     string `json:"dateTime"`
	ProfileImage string `json:"profileImage"`
	MeetingLink  string `json:"meetingLink"`
}

type Widget struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

type ImportResult struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	Error    string `json:"error,omitempty"`
}
