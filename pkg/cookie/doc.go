// Package cookie manages HTTP cookies with optional signing and
// encryption, plus the platform's prefixed application cookies.
//
// The Manager handles plain, signed, and encrypted cookies and flash
// messages. Signing and encryption need a 32+ byte secret; without one
// those operations return [ErrNoSecret].
//
// # Basic Usage
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	value, err := m.Get(r, "theme")
//
// Signed cookies detect tampering with HMAC-SHA256, encrypted cookies
// use AES-256-GCM:
//
//	m := cookie.New(
//		cookie.WithSecret("your-32+-byte-secret-key-here!!"),
//		cookie.WithSecure(true),
//	)
//	err := m.SetSigned(w, "uid", userID, 86400)
//	err = m.SetEncrypted(w, "prefs", userPrefs, 86400)
//
// # Application Cookies
//
// Application cookies share a configured name prefix so several sites
// on one domain do not collide. FromConfig reads the prefix and
// attributes from the garden.cookie.* configuration keys:
//
//	m := cookie.FromConfig(cfg)
//	m.AppSet(w, "TransientKey", key, 0) // sets "<prefix>-app-TransientKey"
//	key, err := m.AppGet(r, "TransientKey")
//	m.AppDelete(w, "TransientKey")
//
// # Flash Messages
//
// Flash messages are encrypted single-read values that delete
// themselves when read:
//
//	m.SetFlash(w, "msg", map[string]string{"type": "success", "text": "Saved!"})
//
//	var msg map[string]string
//	err := m.Flash(w, r, "msg", &msg)
package cookie
