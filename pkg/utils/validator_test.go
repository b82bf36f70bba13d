package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Code   string `json:"code" validate:"required,len=6,number"`
	Folder string `json:"folder" validate:"required,folder"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sample{Code: "123456", Folder: "tasks/photos"})
	assert.Nil(t, errs)
}

func TestValidateStruct_Messages(t *testing.T) {
	errs := ValidateStruct(sample{Code: "12a", Folder: "../etc"})
	assert.Len(t, errs, 2)
	assert.Equal(t, "Must be exactly 6 characters", errs["Code"])
	assert.Contains(t, errs, "Folder")
}

func TestValidateStruct_DigitsOnly(t *testing.T) {
	for _, code := range []string{"-12345", "+12345", "1.2345", "12e456"} {
		errs := ValidateStruct(sample{Code: code, Folder: "tasks"})
		assert.Equal(t, "Must contain digits only", errs["Code"], code)
	}
	assert.Nil(t, ValidateStruct(sample{Code: "012345", Folder: "tasks"}))
}

func TestNewValidator_RegistersFolder(t *testing.T) {
	assert.NotPanics(t, func() {
		v := newValidator()
		assert.NoError(t, v.Var("tasks/photos", "folder"))
		assert.Error(t, v.Var("Tasks", "folder"))
	})
}

func TestValidateStruct_Required(t *testing.T) {
	errs := ValidateStruct(sample{})
	assert.Equal(t, "This field is required", errs["Code"])
	assert.Equal(t, "This field is required", errs["Folder"])
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"b": "second",
		"a": "first",
	})
	assert.Equal(t, "a: first; b: second", msg)
}
