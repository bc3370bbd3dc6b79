package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/i18n"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/components/toast"
	"github.com/rihla-travel/portal/internal/ui/pages"
	"github.com/rihla-travel/portal/internal/validation"
)

// avatarMaxMemory bounds the in-memory part of an avatar upload.
const avatarMaxMemory = 8 << 20

type ProfileHandler struct {
	profileService *service.ProfileService
	userService    *service.UserService
	authService    *service.AuthService
	avatarService  *service.AvatarService
}

func NewProfileHandler(profileService *service.ProfileService, userService *service.UserService, authService *service.AuthService, avatarService *service.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		userService:    userService,
		authService:    authService,
		avatarService:  avatarService,
	}
}

func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)
	user := ctxkeys.User(ctx)

	// The context user has its hash stripped.
	full, err := h.userService.ByID(user.ID)
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	apps, err := h.profileService.Applications(ctx, user.ID)
	if err != nil {
		slog.Error("failed to load applications", "error", err, "user_id", user.ID)
	}

	data := profileData(lang, user, ctxkeys.Profile(ctx), apps)
	data.HasPassword = full.HasPassword()
	ui.Render(w, r, pages.Profile(lang, data))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	user := ctxkeys.User(r.Context())

	err := h.profileService.Update(user.ID, r.FormValue("name"), r.FormValue("country_code"), r.FormValue("phone"))
	if err != nil {
		slog.Warn("failed to update profile", "error", err, "user_id", user.ID)
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, messageKey(err))), toast.Target)
		return
	}

	ui.RenderOOB(w, r, toast.Success(lang, i18n.T(lang, "Profile updated.")), toast.Target)
}

func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	user := ctxkeys.User(r.Context())

	err := h.authService.ChangePassword(user.ID, r.FormValue("current_password"), r.FormValue("new_password"))
	if err != nil {
		slog.Warn("failed to change password", "error", err, "user_id", user.ID)
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, messageKey(err))), toast.Target)
		return
	}

	// Only a successful change clears the typed passwords.
	w.Header().Set("HX-Trigger", "reset-form")
	ui.RenderOOB(w, r, toast.Success(lang, i18n.T(lang, "Password updated.")), toast.Target)
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)
	user := ctxkeys.User(ctx)
	profile := ctxkeys.Profile(ctx)

	data := profileData(lang, user, profile, nil)

	err := r.ParseMultipartForm(avatarMaxMemory)
	if err != nil {
		slog.Warn("failed to parse avatar upload", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.AvatarFragment(lang, data))
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, "Please upload a JPG, PNG or WebP image up to 5 MB.")), toast.Target)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	_, header, err := r.FormFile("avatar")
	if err != nil {
		ui.Render(w, r, pages.AvatarFragment(lang, data))
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, "Please upload a JPG, PNG or WebP image up to 5 MB.")), toast.Target)
		return
	}

	url, err := h.avatarService.Upload(ctx, user.ID, header)
	if err != nil {
		slog.Warn("avatar upload failed", "error", err, "user_id", user.ID)
		ui.Render(w, r, pages.AvatarFragment(lang, data))
		ui.RenderOOB(w, r, toast.Error(lang, i18n.T(lang, messageKey(err))), toast.Target)
		return
	}

	data.AvatarURL = url
	ui.Render(w, r, pages.AvatarFragment(lang, data))
	ui.RenderOOB(w, r, toast.Success(lang, i18n.T(lang, "Profile picture updated.")), toast.Target)
}

func profileData(lang i18n.Lang, user *model.User, profile *model.Profile, apps []service.UserApplications) pages.ProfileData {
	data := pages.ProfileData{Email: user.Email}
	if profile != nil {
		data.Name = profile.Name
		data.AvatarURL = profile.AvatarURL
		data.CountryCode, data.Phone = splitPhone(profile.Phone)
	}

	for _, a := range apps {
		group := pages.ApplicationGroup{Title: a.Service.Title.In(lang), Key: a.Service.Key}
		for _, row := range a.Rows {
			group.Items = append(group.Items, pages.ApplicationItem{
				Reference: row.ID(),
				Submitted: service.FormatValue(row["created_at"]),
			})
		}
		data.Applications = append(data.Applications, group)
	}
	return data
}

// splitPhone separates a stored E.164-like number into one of the offered
// country codes and the local part.
func splitPhone(phone string) (string, string) {
	for _, code := range validation.CountryCodes {
		if local, ok := strings.CutPrefix(phone, code); ok {
			return code, local
		}
	}
	return "", phone
}
