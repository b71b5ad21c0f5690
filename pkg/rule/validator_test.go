package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/yeisme/ngdrive/pkg/rule"
)

// SignupInput 用于测试 ValidateStruct.
type SignupInput struct {
	Email    string `rule:"required,email"`
	Password string `rule:"required,min=6"`
}

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestValidateStruct 测试 ValidateStruct 对有效和无效结构体的验证.
func TestValidateStruct(t *testing.T) {
	// 有效结构体
	valid := SignupInput{Email: "user@example.com", Password: "secret1"}

	err := rule.ValidateStruct(valid)
	if err != nil {
		t.Errorf("Expected no error for valid struct, got %v", err)
	}

	// 无效结构体：非法邮箱
	invalid1 := SignupInput{Email: "not-an-email", Password: "secret1"}

	err = rule.ValidateStruct(invalid1)
	if err == nil {
		t.Error("Expected error for invalid struct (bad email), got nil")
	}

	// 无效结构体：密码太短
	invalid2 := SignupInput{Email: "user@example.com", Password: "abc"}

	err = rule.ValidateStruct(invalid2)
	if err == nil {
		t.Error("Expected error for invalid struct (short password), got nil")
	}
}

// TestValidateVar 测试 ValidateVar 对变量的验证.
func TestValidateVar(t *testing.T) {
	// 有效 email
	err := rule.ValidateVar("test@example.com", "required,email")
	if err != nil {
		t.Errorf("Expected no error for valid email, got %v", err)
	}

	// 无效 email
	err = rule.ValidateVar("invalid-email", "required,email")
	if err == nil {
		t.Error("Expected error for invalid email, got nil")
	}

	// 有效文件名
	err = rule.ValidateVar("report.pdf", "required")
	if err != nil {
		t.Errorf("Expected no error for valid file name, got %v", err)
	}

	// 空文件名
	err = rule.ValidateVar("", "required")
	if err == nil {
		t.Error("Expected error for empty file name, got nil")
	}
}

// TestRegisterValidation 测试注册自定义验证.
func TestRegisterValidation(t *testing.T) {
	// 注册自定义验证：文件名不允许包含路径分隔符
	err := rule.RegisterValidation("no_slash", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}

		for _, r := range str {
			if r == '/' || r == '\\' {
				return false
			}
		}

		return true
	})
	if err != nil {
		t.Fatalf("Failed to register validation: %v", err)
	}

	// 测试有效字符串
	err = rule.ValidateVar("notes.txt", "no_slash")
	if err != nil {
		t.Errorf("Expected no error for plain file name, got %v", err)
	}

	// 测试无效字符串
	err = rule.ValidateVar("../notes.txt", "no_slash")
	if err == nil {
		t.Error("Expected error for file name with separator, got nil")
	}
}

// TestRegisterAlias 测试注册别名.
func TestRegisterAlias(t *testing.T) {
	rule.RegisterAlias("object_name", "required,min=1,max=1024")

	// 测试有效字符串
	err := rule.ValidateVar("a.pdf", "object_name")
	if err != nil {
		t.Errorf("Expected no error for valid string with alias, got %v", err)
	}

	// 测试无效字符串
	err = rule.ValidateVar("", "object_name")
	if err == nil {
		t.Error("Expected error for invalid string with alias, got nil")
	}
}
