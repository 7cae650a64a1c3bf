package session

import (
	"testing"
	"time"

	"github.com/plazakit/plaza/pkg/permission"
)

func TestSession_New(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)
	sess := New("test-id", "test-token", expiresAt)

	if sess.ID != "test-id" {
		t.Errorf("ID = %q, want %q", sess.ID, "test-id")
	}
	if sess.Token != "test-token" {
		t.Errorf("Token = %q, want %q", sess.Token, "test-token")
	}
	if !sess.IsNew() {
		t.Error("IsNew() = false, want true")
	}
	if !sess.IsDirty() {
		t.Error("IsDirty() = false, want true")
	}
	if sess.Attributes == nil {
		t.Error("Attributes is nil")
	}
	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true for fresh session, want false")
	}
}

func TestSession_SetUser(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.ClearDirty()

	perms := permission.NewSet().Grant(permission.DiscussionsAdd)
	sess.SetUser(42, perms)

	if !sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = false after SetUser, want true")
	}
	if sess.UserID != 42 {
		t.Errorf("UserID = %d, want 42", sess.UserID)
	}
	if !sess.IsDirty() {
		t.Error("SetUser should mark session as dirty")
	}
	if !sess.Can(permission.DiscussionsAdd) {
		t.Error("Can() = false for granted permission")
	}
	if sess.Can(permission.SettingsManage) {
		t.Error("Can() = true for ungranted permission")
	}
}

func TestSession_ClearUser(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetUser(42, permission.NewSet().Grant(permission.DiscussionsAdd))
	sess.SetAttribute("theme", "dark")
	sess.ClearDirty()

	sess.ClearUser()

	if sess.IsAuthenticated() {
		t.Error("IsAuthenticated() = true after ClearUser")
	}
	if sess.Can(permission.DiscussionsAdd) {
		t.Error("Can() = true after ClearUser")
	}
	if !sess.IsDirty() {
		t.Error("ClearUser should mark session as dirty")
	}
	if _, ok := sess.GetAttribute("theme"); !ok {
		t.Error("ClearUser should keep attributes")
	}

	// No-op on a guest keeps the session clean.
	sess.ClearDirty()
	sess.ClearUser()
	if sess.IsDirty() {
		t.Error("ClearUser on a guest should not dirty the session")
	}
}

func TestSession_CanJunction(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	if sess.CanJunction(permission.JunctionCategory, 3, permission.DiscussionsView) {
		t.Error("guest CanJunction = true, want false")
	}

	perms := permission.NewSet()
	perms.GrantJunction(permission.JunctionCategory, 3, permission.DiscussionsView)
	sess.SetUser(7, perms)

	if !sess.CanJunction(permission.JunctionCategory, 3, permission.DiscussionsView) {
		t.Error("CanJunction = false for granted category")
	}
	if sess.CanJunction(permission.JunctionCategory, 4, permission.DiscussionsView) {
		t.Error("CanJunction = true for other category without global grant")
	}
}

func TestSession_Attributes(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.ClearDirty()

	sess.SetAttribute("key", "value")

	if !sess.IsDirty() {
		t.Error("SetAttribute should mark session as dirty")
	}

	val, ok := sess.GetAttribute("key")
	if !ok {
		t.Error("GetAttribute returned ok=false for existing key")
	}
	if val != "value" {
		t.Errorf("GetAttribute = %v, want %v", val, "value")
	}

	_, ok = sess.GetAttribute("nonexistent")
	if ok {
		t.Error("GetAttribute returned ok=true for nonexistent key")
	}
}

func TestSession_DeleteAttribute(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetAttribute("key", "value")
	sess.ClearDirty()

	sess.DeleteAttribute("key")

	if !sess.IsDirty() {
		t.Error("DeleteAttribute should mark session as dirty")
	}

	_, ok := sess.GetAttribute("key")
	if ok {
		t.Error("GetAttribute returned ok=true after DeleteAttribute")
	}

	// Deleting a missing key keeps the session clean.
	sess.ClearDirty()
	sess.DeleteAttribute("nonexistent")
	if sess.IsDirty() {
		t.Error("DeleteAttribute on missing key should not dirty the session")
	}
}

func TestSession_DirtyFlag(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	if !sess.IsDirty() {
		t.Error("new session should be dirty")
	}

	sess.ClearDirty()
	if sess.IsDirty() {
		t.Error("ClearDirty() should clear dirty flag")
	}

	sess.MarkDirty()
	if !sess.IsDirty() {
		t.Error("MarkDirty() should set dirty flag")
	}
}

func TestSession_NewFlag(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))

	if !sess.IsNew() {
		t.Error("new session should have IsNew() = true")
	}

	sess.ClearNew()
	if sess.IsNew() {
		t.Error("ClearNew() should clear new flag")
	}
}

func TestSession_IsExpired(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	if sess.IsExpired() {
		t.Error("future expiry should not be expired")
	}

	sess.ExpiresAt = time.Now().Add(-time.Hour)
	if !sess.IsExpired() {
		t.Error("past expiry should be expired")
	}
}

func TestSession_Clone(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetAttribute("key", "value")

	c := sess.clone()
	c.SetAttribute("key", "changed")

	if v, _ := sess.GetAttribute("key"); v != "value" {
		t.Errorf("clone mutation leaked into original: %v", v)
	}
	if c.IsDirty() && sess.clone().IsDirty() {
		t.Error("clone should start clean")
	}
	if sess.clone().IsNew() {
		t.Error("clone should not be new")
	}
}

func TestAttribute_TypedHelper(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetAttribute("string", "hello")
	sess.SetAttribute("int", 42)
	sess.SetAttribute("bool", true)

	strVal, err := Attribute[string](sess, "string")
	if err != nil {
		t.Errorf("Attribute[string] error: %v", err)
	}
	if strVal != "hello" {
		t.Errorf("Attribute[string] = %q, want %q", strVal, "hello")
	}

	intVal, err := Attribute[int](sess, "int")
	if err != nil {
		t.Errorf("Attribute[int] error: %v", err)
	}
	if intVal != 42 {
		t.Errorf("Attribute[int] = %d, want %d", intVal, 42)
	}

	boolVal, err := Attribute[bool](sess, "bool")
	if err != nil {
		t.Errorf("Attribute[bool] error: %v", err)
	}
	if !boolVal {
		t.Error("Attribute[bool] = false, want true")
	}

	// Type mismatch
	if _, err = Attribute[int](sess, "string"); err == nil {
		t.Error("Attribute[int] on string should return error")
	}

	// Nonexistent key
	if _, err = Attribute[string](sess, "nonexistent"); err == nil {
		t.Error("Attribute on nonexistent key should return error")
	}

	// Nil session
	if _, err = Attribute[string](nil, "key"); err != ErrNotFound {
		t.Errorf("Attribute on nil session should return ErrNotFound, got %v", err)
	}
}

func TestAttributeOr_TypedHelper(t *testing.T) {
	sess := New("id", "token", time.Now().Add(time.Hour))
	sess.SetAttribute("exists", "value")

	val := AttributeOr(sess, "exists", "default")
	if val != "value" {
		t.Errorf("AttributeOr = %q, want %q", val, "value")
	}

	val = AttributeOr(sess, "nonexistent", "default")
	if val != "default" {
		t.Errorf("AttributeOr for nonexistent = %q, want %q", val, "default")
	}

	intVal := AttributeOr(sess, "exists", 42)
	if intVal != 42 {
		t.Errorf("AttributeOr for type mismatch = %d, want %d", intVal, 42)
	}
}
