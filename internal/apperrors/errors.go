package apperrors

import (
	"errors"
	"fmt"
)

// 错误码
const (
	CodeInvalidDecks = iota + 1
	CodeInvalidThreshold
	CodeInvalidPenetration
	CodeInvalidPayout
	CodeInvalidDealerRule
	CodeInvalidBetRamp
	CodeInvalidRounds
	CodeInvalidSweep
	CodeInvalidBankroll
)

// ConfigError 配置错误，引擎唯一对外暴露的失败类型
type ConfigError struct {
	Code    int
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is 按错误码比较，便于 errors.Is 匹配预定义错误
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// 预定义错误
var (
	ErrInvalidDecks       = &ConfigError{Code: CodeInvalidDecks, Field: "decks", Message: "牌靴至少需要 1 副牌"}
	ErrInvalidThreshold   = &ConfigError{Code: CodeInvalidThreshold, Field: "threshold", Message: "停牌阈值必须在 4 到 21 之间"}
	ErrInvalidPenetration = &ConfigError{Code: CodeInvalidPenetration, Field: "penetration", Message: "洗牌渗透率必须在 (0, 100] 之间"}
	ErrInvalidPayout      = &ConfigError{Code: CodeInvalidPayout, Field: "blackjack_payout", Message: "黑杰克赔率必须大于 0"}
	ErrInvalidDealerRule  = &ConfigError{Code: CodeInvalidDealerRule, Field: "dealer_stand_on", Message: "庄家停牌点数必须在 12 到 21 之间"}
	ErrInvalidBetRamp     = &ConfigError{Code: CodeInvalidBetRamp, Field: "bet_ramp", Message: "下注梯度不能为空且真数必须递增"}
	ErrInvalidRounds      = &ConfigError{Code: CodeInvalidRounds, Field: "rounds", Message: "模拟局数至少为 1"}
	ErrInvalidSweep       = &ConfigError{Code: CodeInvalidSweep, Field: "sweep", Message: "未知的扫描类型"}
	ErrInvalidBankroll    = &ConfigError{Code: CodeInvalidBankroll, Field: "bankroll", Message: "初始筹码与默认下注必须大于 0"}
)

// Invalid 基于预定义错误生成带具体数值的错误
func Invalid(base *ConfigError, value any) *ConfigError {
	return &ConfigError{
		Code:    base.Code,
		Field:   base.Field,
		Message: fmt.Sprintf("%s (got %v)", base.Message, value),
	}
}

// IsConfigError 判断错误链中是否包含配置错误
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
