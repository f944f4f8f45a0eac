package cookie

import (
	"net/http"
	"time"

	"gin-jobqueue/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var sameSiteModes = map[string]http.SameSite{
	"Strict": http.SameSiteStrictMode,
	"Lax":    http.SameSiteLaxMode,
	"None":   http.SameSiteNoneMode,
}

func accessToken(cfg config.CookieConfig, value string, maxAge int) *http.Cookie {
	mode, ok := sameSiteModes[cfg.SameSite]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: mode,
	}
}

// SetAccessToken issues the token with a max-age equal to its lifetime.
func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, accessToken(cfg, token, int(ttl.Seconds())))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, accessToken(cfg, "", -1))
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}
