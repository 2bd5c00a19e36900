package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		pw     string
		id     string
		failed []string
	}{
		{name: "AllRulesPass", pw: "Str0ng!Pass", id: "EMP-004", failed: nil},
		{name: "TooShort", pw: "S0r!t", id: "", failed: []string{RuleMinLength}},
		{name: "NoUppercase", pw: "weak0!pass", id: "", failed: []string{RuleUppercase}},
		{name: "NoLowercase", pw: "WEAK0!PASS", id: "", failed: []string{RuleLowercase}},
		{name: "NoDigit", pw: "Weak!Pass", id: "", failed: []string{RuleDigit}},
		{name: "NoSpecial", pw: "Weak0Pass", id: "", failed: []string{RuleSpecial}},
		{name: "ContainsEmployeeID", pw: "Emp-004!Xy1", id: "EMP-004", failed: []string{RuleNotID}},
		{name: "Empty", pw: "", id: "", failed: []string{
			RuleMinLength, RuleUppercase, RuleLowercase, RuleDigit, RuleSpecial,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.failed, Validate(tt.pw, tt.id))
		})
	}
}

func TestOK(t *testing.T) {
	assert.True(t, OK("Str0ng!Pass", "EMP-004"))
	assert.False(t, OK("weak", "EMP-004"))
}
