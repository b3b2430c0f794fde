package common

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Severity 風險嚴重程度
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// VerdictStatus 單項判定狀態
type VerdictStatus string

const (
	StatusSafe    VerdictStatus = "safe"
	StatusWarning VerdictStatus = "warning"
	StatusDanger  VerdictStatus = "danger"
)

// ConditionCategory 評估條件類別
type ConditionCategory string

const (
	CategoryDiet    ConditionCategory = "diet"
	CategoryAllergy ConditionCategory = "allergy"
	CategoryAvoid   ConditionCategory = "avoid"
	CategoryHealth  ConditionCategory = "health"
)

// Condition 單一評估條件（飲食、過敏原或健康問題）
type Condition struct {
	Category ConditionCategory `json:"category"`
	Name     string            `json:"name"`
}

// Issue 掃描發現的單一問題
type Issue struct {
	Type   string `json:"type" bson:"type"`
	Item   string `json:"item" bson:"item"`
	Reason string `json:"reason" bson:"reason"`
}

// 問題類型
const (
	IssueUnknownIngredient = "unknown_ingredient"
	IssueAllergen          = "allergen"
	IssueNonVegan          = "non_vegan"
	IssueAvoided           = "avoided"
	IssueHealth            = "health"
)

// Verdict 單一條件的判定結果
type Verdict struct {
	Category ConditionCategory `json:"category" bson:"category"`
	Name     string            `json:"name" bson:"name"`
	Status   VerdictStatus     `json:"status" bson:"status"`
	Reason   string            `json:"reason" bson:"reason"`
}

// Alternative 建議的替代產品
type Alternative struct {
	Name      string `json:"name" bson:"name"`
	Brand     string `json:"brand" bson:"brand"`
	Reason    string `json:"reason" bson:"reason"`
	SearchURL string `json:"searchUrl" bson:"searchUrl"`
}

// Result 掃描評估結果（兩種評估策略共用同一結構）
type Result struct {
	Safe                bool          `json:"safe" bson:"safe"`
	RiskScore           int           `json:"riskScore" bson:"riskScore"`
	Severity            Severity      `json:"severity" bson:"severity"`
	Issues              []Issue       `json:"issues" bson:"issues"`
	Verdicts            []Verdict     `json:"verdicts" bson:"verdicts"`
	Alternatives        []Alternative `json:"alternatives" bson:"alternatives"`
	Summary             string        `json:"summary" bson:"summary"`
	DetailedExplanation string        `json:"detailedExplanation,omitempty" bson:"detailedExplanation,omitempty"`
}

// User 使用者與偏好設定
// allergies / avoid / healthIssues 一律以小寫儲存，條件萃取與安全覆寫依賴此不變量
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID           string             `bson:"userId" json:"userId"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"passwordHash" json:"-"`
	Diet             string             `bson:"diet" json:"diet"`
	Allergies        []string           `bson:"allergies" json:"allergies"`
	Avoid            []string           `bson:"avoid" json:"avoid"`
	HealthIssues     []string           `bson:"healthIssues" json:"healthIssues"`
	Likes            []string           `bson:"likes" json:"likes"`
	Age              int                `bson:"age,omitempty" json:"age,omitempty"`
	Gender           string             `bson:"gender,omitempty" json:"gender,omitempty"`
	ProfileCompleted bool               `bson:"profileCompleted" json:"profileCompleted"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Ingredient 參考食材資料（掃描管線唯讀）
type Ingredient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Vegan     bool               `bson:"vegan" json:"vegan"`
	Allergens []string           `bson:"allergens" json:"allergens"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Scan 單次掃描的歷史紀錄，建立後除 isSaved 外不再變更
type Scan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ScanID      string             `bson:"scanId" json:"scanId"`
	UserID      string             `bson:"userId" json:"userId"`
	Ingredients []string           `bson:"ingredients" json:"ingredients"`
	ContentHash string             `bson:"contentHash,omitempty" json:"contentHash,omitempty"`
	Result      Result             `bson:"result" json:"result"`
	IsSaved     bool               `bson:"isSaved" json:"isSaved"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
