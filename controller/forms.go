package controller

import (
	"candideit/app_error"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const nonFieldErrors = "__all__"

type FormChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FormField struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"`
	Required bool          `json:"required"`
	Choices  []*FormChoice `json:"choices,omitempty"`
}

// Form describes an html form together with the submitted values and the
// errors found in them.
type Form struct {
	Name   string              `json:"name"`
	Fields []*FormField        `json:"fields"`
	Values map[string]string   `json:"values"`
	Errors map[string][]string `json:"errors"`
}

func newForm(name string, fields ...*FormField) *Form {
	return &Form{
		Name:   name,
		Fields: fields,
		Values: make(map[string]string),
		Errors: make(map[string][]string),
	}
}

func textField(name string, required bool) *FormField {
	return &FormField{Name: name, Type: "text", Required: required}
}

func textareaField(name string, required bool) *FormField {
	return &FormField{Name: name, Type: "textarea", Required: required}
}

func fileField(name string) *FormField {
	return &FormField{Name: name, Type: "file"}
}

func passwordField(name string) *FormField {
	return &FormField{Name: name, Type: "password", Required: true}
}

func choiceField(name string, required bool, choices []*FormChoice) *FormField {
	return &FormField{Name: name, Type: "select", Required: required, Choices: choices}
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Form) AddError(field string, message string) {
	f.Errors[field] = append(f.Errors[field], message)
}

// AddValidationError records err on the form when it is a validation error
// and reports whether it did.
func (f *Form) AddValidationError(err error) bool {
	validation, ok := app_error.AsValidation(err)
	if !ok {
		return false
	}
	f.AddError(validation.Field, validation.Message)
	return true
}

// Fill copies the submitted values of every non file field.
func (f *Form) Fill(c *gin.Context) {
	for _, field := range f.Fields {
		if field.Type == "file" {
			continue
		}
		if value, ok := c.GetPostForm(field.Name); ok {
			f.Values[field.Name] = value
		}
	}
}

var registerFormTags sync.Once

func formValidator() {
	registerFormTags.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

// bindForm binds the posted form into dto, keeps the submitted values on form
// and turns binding failures into field errors.
func bindForm(c *gin.Context, dto any, form *Form) bool {
	formValidator()
	err := c.ShouldBind(dto)
	form.Fill(c)
	if err == nil {
		return true
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fieldError := range fieldErrors {
			form.AddError(fieldError.Field(), validationMessage(fieldError))
		}
		return false
	}
	form.AddError(nonFieldErrors, err.Error())
	return false
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "Este campo es obligatorio."
	case "max":
		return fmt.Sprintf("Asegúrate de que este valor tenga como máximo %s caracteres.", fieldError.Param())
	case "email":
		return "Introduce una dirección de correo electrónico válida."
	case "eqfield":
		return "Los dos campos de contraseña no coinciden."
	case "numeric":
		return "Escoge una opción válida."
	default:
		return "Valor no válido."
	}
}

// optionalFile returns the uploaded file of field, or nil when none was sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return header, err
}
