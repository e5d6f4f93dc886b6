package forms

import (
	"strings"
	"testing"
)

func TestPostInputValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      PostInput
		wantFields []string
	}{
		{"valid text only", PostInput{Text: "hello"}, nil},
		{"valid with group", PostInput{Text: "hello", Group: "3"}, nil},
		{"empty text", PostInput{Text: ""}, []string{"text"}},
		{"blank text", PostInput{Text: "   \n\t"}, []string{"text"}},
		{"bad group", PostInput{Text: "hello", Group: "abc"}, []string{"group"}},
		{"negative group", PostInput{Text: "hello", Group: "-1"}, []string{"group"}},
		{"both invalid", PostInput{Text: " ", Group: "x"}, []string{"text", "group"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			errs := in.Validate()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() = %v, want errors on %v", errs, tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if len(errs.Get(field)) == 0 {
					t.Errorf("expected error on field %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestPostInputGroupID(t *testing.T) {
	tests := []struct {
		group string
		want  int64
	}{
		{"", 0},
		{"7", 7},
		{"abc", 0},
	}
	for _, tt := range tests {
		in := PostInput{Group: tt.group}
		if got := in.GroupID(); got != tt.want {
			t.Errorf("GroupID() with group %q = %d, want %d", tt.group, got, tt.want)
		}
	}
}

func TestPostInputNormalize(t *testing.T) {
	in := PostInput{Text: "  padded  ", Group: " 2 "}
	if errs := in.Validate(); errs.Any() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if in.Text != "padded" || in.GroupID() != 2 {
		t.Errorf("Normalize() left %+v", in)
	}
}

func TestCommentInputValidate(t *testing.T) {
	valid := CommentInput{Text: "nice post"}
	if errs := valid.Validate(); errs.Any() {
		t.Errorf("unexpected errors: %v", errs)
	}

	blank := CommentInput{Text: "  "}
	errs := blank.Validate()
	if got := errs.Get("text"); len(got) != 1 || got[0] != "This field is required." {
		t.Errorf("Get(text) = %v", got)
	}
}

func TestSignupInputValidate(t *testing.T) {
	base := func() SignupInput {
		return SignupInput{
			Username:        "leo",
			Email:           "leo@example.com",
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
		}
	}

	tests := []struct {
		name      string
		mutate    func(*SignupInput)
		wantField string
	}{
		{"valid", func(*SignupInput) {}, ""},
		{"no email is fine", func(in *SignupInput) { in.Email = "" }, ""},
		{"bad email", func(in *SignupInput) { in.Email = "nope" }, "email"},
		{"username with space", func(in *SignupInput) { in.Username = "leo tolstoy" }, "username"},
		{"username with allowed symbols", func(in *SignupInput) { in.Username = "leo.t@+_-" }, ""},
		{"long username", func(in *SignupInput) { in.Username = strings.Repeat("a", 151) }, "username"},
		{"short password", func(in *SignupInput) { in.Password, in.PasswordConfirm = "short", "short" }, "password1"},
		{"mismatched passwords", func(in *SignupInput) { in.PasswordConfirm = "something else" }, "password2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			errs := in.Validate()
			if tt.wantField == "" {
				if errs.Any() {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			if len(errs.Get(tt.wantField)) == 0 {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestLoginInputValidate(t *testing.T) {
	in := LoginInput{Username: " leo ", Password: ""}
	errs := in.Validate()
	if in.Username != "leo" {
		t.Errorf("Username = %q, want trimmed", in.Username)
	}
	if len(errs.Get("password")) == 0 {
		t.Errorf("expected password error, got %v", errs)
	}
}

func TestErrorsError(t *testing.T) {
	errs := Errors{}
	errs.Add("text", "This field is required.")
	errs.Add("group", "Select a valid choice.")

	want := "invalid form: group: Select a valid choice.; text: This field is required."
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
