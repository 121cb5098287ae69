package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/classroom"
)

type (
	classroomPage struct {
		Variant      string
		Variants     []string
		Scene        classroom.Scene
		Capacity     int
		Fallbacks    []classroom.AssetResult
		Controls     classroom.Controls
		Participants []classroom.Participant
		Transcript   []classroom.ChatMessage
		Session      classroom.SessionInfo
		CourseID     string
	}

	chatForm struct {
		Message string `form:"message" json:"message"`
	}
)

func registerClassroomPages(g *echo.Group, s *Server) {
	cg := g.Group("/virtual-classroom")
	cg.GET("", s.virtualClassroom)
	cg.POST("/controls/:control", s.toggleControl)
	cg.POST("/chat", s.postChat)
}

// resolveScene returns the requested variant with unavailable models swapped for primitives.
// An empty name selects the models variant.
func (s *Server) resolveScene(ctx echo.Context) (classroom.Scene, []classroom.AssetResult, error) {
	name := ctx.QueryParam("variant")
	if name == "" {
		name = classroom.VariantModels
	}
	scene, ok := classroom.Variant(name)
	if !ok {
		return classroom.Scene{}, nil, core.NewValidationError(nil, core.FieldError{
			Field: "variant",
			Error: "must be one of " + classroom.VariantModels + " " + classroom.VariantPrimitives,
		})
	}
	if err := scene.Validate(s.Validate); err != nil {
		return classroom.Scene{}, nil, errors.Wrapf(err, "invalid %s scene", name)
	}
	resolved, results := s.AssetLoader.Resolve(ctx.Request().Context(), scene)
	return resolved, results, nil
}

func (s *Server) virtualClassroom(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	scene, results, err := s.resolveScene(ctx)
	if err != nil {
		return err
	}
	var courseName string
	courseID := ctx.QueryParam("course")
	if courseID != "" {
		course, err := s.CatalogSvc.Course(courseID)
		if err != nil {
			return errors.Wrap(err, "finding course")
		}
		courseName = course.Title
	}

	data := classroomPage{
		Variant:      ctx.QueryParam("variant"),
		Variants:     []string{classroom.VariantModels, classroom.VariantPrimitives},
		Scene:        scene,
		Capacity:     scene.Layout.Capacity(),
		Controls:     v.Controls.Get(),
		Participants: classroom.Participants(),
		Transcript:   classroom.Transcript(),
		Session:      classroom.NewSessionInfo(courseName),
		CourseID:     courseID,
	}
	if data.Variant == "" {
		data.Variant = classroom.VariantModels
	}
	for _, res := range results {
		if !res.Loaded {
			data.Fallbacks = append(data.Fallbacks, res)
		}
	}
	return ctx.Render(http.StatusOK, "classroom", newPage(ctx, "Virtual Classroom", data))
}

func (s *Server) toggleControl(ctx echo.Context) error {
	v, err := getContextVisitor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context visitor")
	}
	var in classroom.ToggleInput
	if err := ctx.Bind(&in); err != nil {
		return errors.Wrap(err, "binding to ToggleInput")
	}
	if _, err := v.Controls.Toggle(ctx.Request().Context(), s.Validate, in); err != nil {
		return err
	}
	return redirectBack(ctx, "/virtual-classroom")
}

// postChat accepts a message and drops it: the transcript is static.
func (s *Server) postChat(ctx echo.Context) error {
	var form chatForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to chatForm")
	}
	s.Logger.Debug("echoweb.postChat: discarded message of " + strconv.Itoa(len(form.Message)) + " bytes")
	return redirectBack(ctx, "/virtual-classroom")
}
