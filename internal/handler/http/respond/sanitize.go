package respond

import (
	"regexp"
)

var (
	// DSN内のパスワードパターン（postgres:// や amqp:// など）
	dsnPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// SASL/接続文字列のパスワードパターン
	passwordKVPattern = regexp.MustCompile(`(?i)(password|sasl\.password)=\S+`)

	// JWTシークレットなどのBearerトークン
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-_.]+`)
)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()

	// DB・ブローカーDSNのパスワードのマスク
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	// key=value形式のパスワードのマスク
	msg = passwordKVPattern.ReplaceAllString(msg, "$1=****")

	// Bearerトークンのマスク
	msg = bearerPattern.ReplaceAllString(msg, "Bearer ****")

	return msg
}
