package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/emstack/ems-console/modules/profile/domain/aggregates/profile"
	"github.com/emstack/ems-console/modules/profile/presentation/mappers"
	"github.com/emstack/ems-console/modules/profile/presentation/viewmodels"
	"github.com/emstack/ems-console/modules/profile/services"
	"github.com/emstack/ems-console/pkg/constants"
	"github.com/emstack/ems-console/pkg/httpapi"
	"github.com/emstack/ems-console/pkg/middleware"
	"github.com/emstack/ems-console/pkg/shared"
)

type ProfileControllerOptions struct {
	Service         *services.ProfileService
	AssetBaseURL    string
	MaxUploadMemory int64
}

// ProfileController serves the self-edit page. Any signed-in role may use
// it; the upstream scopes the record to the bearer token.
type ProfileController struct {
	opts     ProfileControllerOptions
	basePath string
}

func NewProfileController(opts ProfileControllerOptions) *ProfileController {
	return &ProfileController{
		opts:     opts,
		basePath: "/employee-profile",
	}
}

func (c *ProfileController) Key() string {
	return c.basePath
}

func (c *ProfileController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RequireSession())
	router.HandleFunc("", c.Show).Methods(http.MethodGet)
	router.HandleFunc("", c.Save).Methods(http.MethodPut)
}

func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	p, err := c.opts.Service.Get(r.Context())
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.ProfileToProps(p, c.opts.AssetBaseURL))
}

func (c *ProfileController) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(c.opts.MaxUploadMemory); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	var dto profile.UpdateDTO
	if err := constants.FormDecoder.Decode(&dto, url.Values(r.MultipartForm.Value)); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return
	}
	if !c.resolveImage(w, r, &dto.Image) {
		return
	}
	if errs, ok := dto.Ok(); !ok {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", errs)
		return
	}

	result, err := c.opts.Service.Update(r.Context(), &dto)
	if err != nil {
		_ = httpapi.WriteFailure(w, err)
		return
	}

	message := "Profile updated."
	if !result.Changed {
		message = "No changes to save."
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &viewmodels.SaveResponse{
		Profile: mappers.ProfileToProps(result.Profile, c.opts.AssetBaseURL),
		Saved:   result.Changed,
		Message: message,
	})
}

func (c *ProfileController) resolveImage(w http.ResponseWriter, r *http.Request, image *shared.ImageField) bool {
	*image = shared.ImageUnchanged()
	if r.FormValue("removeImage") == "true" {
		*image = shared.ImageCleared()
	}

	file, header, err := r.FormFile("profileImage")
	if errors.Is(err, http.ErrMissingFile) {
		return true
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_FORM", "malformed form body", nil)
		return false
	}
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED",
			"validation failed", map[string]string{"ProfileImage": "Only image files are accepted"})
		return false
	}
	*image = shared.ImageReplaced(shared.Upload{
		Name:        header.Filename,
		Content:     content,
		ContentType: mtype.String(),
	})
	return true
}
