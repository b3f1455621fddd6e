package registration

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supportedLanguages = []language.Tag{
	language.English, // first entry is the fallback
	language.Vietnamese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var vietnamese = map[string]string{
	msgFullNameRequired:       "Vui lòng nhập họ và tên",
	msgFullNameTokens:         "Vui lòng nhập ít nhất hai từ",
	msgEmailRequired:          "Vui lòng nhập email",
	msgEmailMalformed:         "Vui lòng nhập email hợp lệ",
	msgPasswordRequired:       "Vui lòng nhập mật khẩu",
	msgPasswordTooShort:       "Vui lòng nhập ít nhất %d ký tự",
	msgRetypePasswordRequired: "Vui lòng nhập lại mật khẩu",
	msgPasswordMismatch:       "Mật khẩu không khớp",
	msgRegisterSuccess:        "Đăng ký thành công",

	"Full Name":       "Họ và tên",
	"Email":           "Email",
	"Password":        "Mật khẩu",
	"Retype Password": "Nhập lại mật khẩu",
	"Register":        "Đăng ký",
	"Create account":  "Tạo tài khoản",
	"Show":            "Hiện",
	"Hide":            "Ẩn",
	"Submitting…":     "Đang gửi…",
}

var messages = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, translated := range vietnamese {
		// Keys are constants, SetString only fails on malformed messages.
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Vietnamese, key, translated)
	}
	return b
}

// Localizer renders form messages in one of the supported languages.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer picks the best supported language for an Accept-Language
// header value. Unparseable or unsupported values fall back to English.
func NewLocalizer(acceptLanguage string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	tag := language.English
	if err == nil && len(tags) > 0 {
		_, idx, conf := languageMatcher.Match(tags...)
		if conf != language.No {
			tag = supportedLanguages[idx]
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// Tag returns the selected language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// FieldMessage localizes a field error. A nil error yields "".
func (l *Localizer) FieldMessage(fe *FieldError) string {
	if fe == nil {
		return ""
	}
	return l.printer.Sprintf(fe.Key, fe.Args...)
}

// Messages localizes a full set of errors into a field name → message map.
func (l *Localizer) Messages(errs Errors) map[string]string {
	out := make(map[string]string, len(errs))
	for f, fe := range errs {
		out[string(f)] = l.FieldMessage(fe)
	}
	return out
}

// Notice localizes a notice. Notices without a key keep their message.
func (l *Localizer) Notice(n Notice) string {
	if n.Key == "" {
		return n.Message
	}
	return l.printer.Sprintf(n.Key, n.Args...)
}

// Text localizes a fixed interface string such as a label or button caption.
func (l *Localizer) Text(key string) string {
	return l.printer.Sprintf(key)
}

// Label localizes a field's label.
func (l *Localizer) Label(f Field) string {
	return l.Text(f.Label())
}
