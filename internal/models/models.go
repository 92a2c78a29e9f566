package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type User struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Username         string          `json:"username" gorm:"uniqueIndex;not null"`
	DisplayName      *string         `json:"displayName"`
	Email            *string         `json:"email"`
	WalletAddress    *string         `json:"walletAddress"`
	ConnectedTracker *string         `json:"connectedTracker"`
	TotalEarnings    decimal.Decimal `json:"totalEarnings" gorm:"type:numeric(18,4);not null;default:0"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// UserUpdate carries the profile fields a user may change. Nil fields are left alone.
type UserUpdate struct {
	DisplayName      *string `json:"displayName"`
	Email            *string `json:"email" binding:"omitempty,email"`
	WalletAddress    *string `json:"walletAddress"`
	ConnectedTracker *string `json:"connectedTracker"`
}

type Dream struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"userId" gorm:"index;not null"`
	User            *User          `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Title           string         `json:"title" gorm:"not null"`
	Content         string         `json:"content" gorm:"not null"`
	Category        string         `json:"category" gorm:"index;not null"`
	MoodRating      int            `json:"moodRating" gorm:"not null"`
	ClarityRating   int            `json:"clarityRating" gorm:"not null"`
	VividnessRating int            `json:"vividnessRating" gorm:"not null"`
	Tags            pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsPrivate       bool           `json:"isPrivate" gorm:"not null"`
	RecordedAt      time.Time      `json:"recordedAt" gorm:"index"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// DreamUpdate carries editable dream content. Nil fields are left alone.
type DreamUpdate struct {
	Title           *string   `json:"title" binding:"omitempty,min=1"`
	Content         *string   `json:"content" binding:"omitempty,min=1"`
	Category        *string   `json:"category" binding:"omitempty,min=1"`
	MoodRating      *int      `json:"moodRating" binding:"omitempty,min=0,max=10"`
	ClarityRating   *int      `json:"clarityRating" binding:"omitempty,min=0,max=10"`
	VividnessRating *int      `json:"vividnessRating" binding:"omitempty,min=0,max=10"`
	Tags            *[]string `json:"tags"`
	IsPrivate       *bool     `json:"isPrivate"`
}

// Apply copies the non-nil fields of u onto d.
func (u DreamUpdate) Apply(d *Dream) {
	if u.Title != nil {
		d.Title = *u.Title
	}
	if u.Content != nil {
		d.Content = *u.Content
	}
	if u.Category != nil {
		d.Category = *u.Category
	}
	if u.MoodRating != nil {
		d.MoodRating = *u.MoodRating
	}
	if u.ClarityRating != nil {
		d.ClarityRating = *u.ClarityRating
	}
	if u.VividnessRating != nil {
		d.VividnessRating = *u.VividnessRating
	}
	if u.Tags != nil {
		d.Tags = pq.StringArray(*u.Tags)
	}
	if u.IsPrivate != nil {
		d.IsPrivate = *u.IsPrivate
	}
}

// Apply copies the non-nil fields of u onto usr.
func (u UserUpdate) Apply(usr *User) {
	if u.DisplayName != nil {
		usr.DisplayName = u.DisplayName
	}
	if u.Email != nil {
		usr.Email = u.Email
	}
	if u.WalletAddress != nil {
		usr.WalletAddress = u.WalletAddress
	}
	if u.ConnectedTracker != nil {
		usr.ConnectedTracker = u.ConnectedTracker
	}
}

type DreamAnalysis struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	DreamID             uint           `json:"dreamId" gorm:"uniqueIndex;not null"`
	Dream               *Dream         `json:"-"`
	Interpretation      string         `json:"interpretation" gorm:"not null"`
	Symbols             Symbols        `json:"symbols" gorm:"type:jsonb"`
	Emotions            pq.StringArray `json:"emotions" gorm:"type:text[]"`
	PersonalityInsights pq.StringArray `json:"personalityInsights" gorm:"type:text[]"`
	TrendPredictions    pq.StringArray `json:"trendPredictions" gorm:"type:text[]"`
	RarityScore         int            `json:"rarityScore" gorm:"not null"`
	DreamType           string         `json:"dreamType"`
	LucidityLevel       int            `json:"lucidityLevel"`
	PsychologicalThemes pq.StringArray `json:"psychologicalThemes" gorm:"type:text[]"`
	SpiritualInsights   pq.StringArray `json:"spiritualInsights" gorm:"type:text[]"`
	AgentAnalyses       AgentAnalyses  `json:"agentAnalyses" gorm:"type:jsonb"`
	CreatedAt           time.Time      `json:"createdAt"`
}

type DreamNFT struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	DreamID     uint                `json:"dreamId" gorm:"index;not null"`
	Dream       *Dream              `json:"-"`
	UserID      uint                `json:"userId" gorm:"index;not null"`
	User        *User               `json:"-"`
	Title       string              `json:"title" gorm:"not null"`
	ArtStyle    string              `json:"artStyle" gorm:"not null"`
	Rarity      string              `json:"rarity" gorm:"not null"`
	RarityScore int                 `json:"rarityScore" gorm:"not null"`
	Price       decimal.NullDecimal `json:"price" gorm:"type:numeric(18,4)"`
	IsMinted    bool                `json:"isMinted" gorm:"not null"`
	MintedAt    *time.Time          `json:"mintedAt"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type SleepData struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"userId" gorm:"index;not null"`
	User           *User     `json:"-"`
	Date           time.Time `json:"date" gorm:"index;not null"`
	TotalSleep     *int      `json:"totalSleep" gorm:"column:total_sleep_minutes"`
	RemSleep       *int      `json:"remSleep" gorm:"column:rem_sleep_minutes"`
	DeepSleep      *int      `json:"deepSleep" gorm:"column:deep_sleep_minutes"`
	LightSleep     *int      `json:"lightSleep" gorm:"column:light_sleep_minutes"`
	SleepQuality   *int      `json:"sleepQuality"`
	DreamFrequency *int      `json:"dreamFrequency"`
	Tracker        *string   `json:"tracker"`
	RawData        JSON      `json:"rawData" gorm:"type:jsonb"`
	CreatedAt      time.Time `json:"createdAt"`
}

const (
	ActivityDreamSubmission = "dream_submission"
	CurrencyDream           = "DREAM"
)

// MiningReward is a ledger entry. A dream earns at most one reward per
// activity.
type MiningReward struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"userId" gorm:"index;not null"`
	User        *User           `json:"-"`
	DreamID     *uint           `json:"dreamId" gorm:"uniqueIndex:idx_mining_rewards_dream_activity"`
	Dream       *Dream          `json:"-"`
	Activity    string          `json:"activity" gorm:"not null;uniqueIndex:idx_mining_rewards_dream_activity"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(18,4);not null"`
	Currency    string          `json:"currency" gorm:"not null;default:DREAM"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"index"`
}

// All lists every model for AutoMigrate, parents first.
func All() []any {
	return []any{&User{}, &Dream{}, &DreamAnalysis{}, &DreamNFT{}, &SleepData{}, &MiningReward{}}
}
