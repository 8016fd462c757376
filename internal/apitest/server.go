// Package apitest provides an in-process fake of the JobGate REST API
// for exercising the client against real HTTP.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/20mouhcine/jobgate-client/internal/domain"
)

// Fixture is the data the fake server serves.
type Fixture struct {
	Email    string
	Password string
	Token    string
	Identity domain.Identity

	Events        []domain.Event
	Participation domain.Participation
	Statistics    domain.EventStatistics
}

// RegisterCall captures one talents/ submission.
type RegisterCall struct {
	ContentType string
	Fields      map[string]string
	HasResume   bool
}

// Recorder collects what the server saw, for assertions.
type Recorder struct {
	mu sync.Mutex

	LoginCalls    int
	ProfileCalls  int
	AvatarCalls   []string
	RegisterCalls []RegisterCall
	UpdateCalls   []domain.Evaluation
	ReminderCalls []uint
}

func (r *Recorder) record(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

func (r *Recorder) Logins() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.LoginCalls
}

func (r *Recorder) Profiles() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ProfileCalls
}

// Avatars returns the filenames of the uploaded avatar images.
func (r *Recorder) Avatars() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.AvatarCalls...)
}

// Updates returns the recorded evaluation PUTs.
func (r *Recorder) Updates() []domain.Evaluation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Evaluation(nil), r.UpdateCalls...)
}

func (r *Recorder) Registers() []RegisterCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]RegisterCall(nil), r.RegisterCalls...)
}

// NewServer starts the fake API. Callers own closing the returned
// httptest server.
func NewServer(fix Fixture) (*httptest.Server, *Recorder) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(requestid.New())

	rec := &Recorder{}

	authorized := func(ctx *gin.Context) bool {
		if ctx.GetHeader("Authorization") != "Bearer "+fix.Token {
			ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})

			return false
		}

		return true
	}

	engine.POST("/api/auth/login/", func(ctx *gin.Context) {
		rec.record(func() { rec.LoginCalls++ })

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

			return
		}
		if req.Email != fix.Email || req.Password != fix.Password {
			ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})

			return
		}

		ctx.JSON(http.StatusOK, gin.H{"access": fix.Token, "user": fix.Identity})
	})

	engine.POST("/api/auth/register/", func(ctx *gin.Context) {
		var req domain.Identity
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

			return
		}
		req.ID = fix.Identity.ID

		ctx.JSON(http.StatusCreated, req)
	})

	engine.GET("/api/auth/profile/", func(ctx *gin.Context) {
		rec.record(func() { rec.ProfileCalls++ })
		if !authorized(ctx) {
			return
		}

		ctx.JSON(http.StatusOK, fix.Identity)
	})

	engine.PUT("/api/auth/profile/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		updated := fix.Identity
		var req struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := ctx.ShouldBindJSON(&req); err == nil {
			if req.FirstName != "" {
				updated.FirstName = req.FirstName
			}
			if req.LastName != "" {
				updated.LastName = req.LastName
			}
		}

		ctx.JSON(http.StatusOK, updated)
	})

	engine.POST("/api/auth/profile/avatar/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		file, err := ctx.FormFile("avatar")
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "avatar file is required"})

			return
		}
		rec.record(func() { rec.AvatarCalls = append(rec.AvatarCalls, file.Filename) })

		updated := fix.Identity
		updated.Avatar = "/media/avatars/" + file.Filename

		ctx.JSON(http.StatusOK, updated)
	})

	engine.GET("/api/user/:userID/events/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		id, _ := strconv.Atoi(ctx.Param("userID"))
		if uint(id) != fix.Identity.ID {
			ctx.JSON(http.StatusOK, []domain.Event{})

			return
		}

		ctx.JSON(http.StatusOK, fix.Events)
	})

	engine.GET("/api/participations/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		ctx.JSON(http.StatusOK, []domain.Participation{fix.Participation})
	})

	engine.GET("/api/events/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, fix.Events)
	})

	engine.GET("/api/events/:eventID/", func(ctx *gin.Context) {
		id, _ := strconv.Atoi(ctx.Param("eventID"))
		for _, event := range fix.Events {
			if event.ID == uint(id) {
				ctx.JSON(http.StatusOK, event)

				return
			}
		}

		ctx.JSON(http.StatusNotFound, gin.H{"detail": "event not found"})
	})

	engine.DELETE("/api/events/:eventID/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		ctx.Status(http.StatusNoContent)
	})

	engine.GET("/api/events/:eventID/statistics/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		ctx.JSON(http.StatusOK, fix.Statistics)
	})

	engine.GET("/api/participations-details/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		ctx.JSON(http.StatusOK, fix.Participation)
	})

	engine.PUT("/api/participations-details/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		var eval domain.Evaluation
		if err := ctx.ShouldBindJSON(&eval); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

			return
		}
		rec.record(func() { rec.UpdateCalls = append(rec.UpdateCalls, eval) })

		updated := fix.Participation
		updated.Note = eval.Note
		updated.Comment = eval.Comment
		updated.HasAttended = eval.HasAttended
		updated.IsSelected = eval.IsSelected

		ctx.JSON(http.StatusOK, updated)
	})

	engine.POST("/api/talents/", func(ctx *gin.Context) {
		call := RegisterCall{
			ContentType: ctx.ContentType(),
			Fields:      map[string]string{},
		}

		if call.ContentType == "multipart/form-data" {
			form, err := ctx.MultipartForm()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed multipart payload"})

				return
			}
			for key, values := range form.Value {
				if len(values) > 0 {
					call.Fields[key] = values[0]
				}
			}
			call.HasResume = len(form.File["resume"]) > 0
		} else {
			var req map[string]interface{}
			if err := ctx.ShouldBindJSON(&req); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

				return
			}
			for key, value := range req {
				if s, ok := value.(string); ok {
					call.Fields[key] = s
				}
			}
		}

		rec.record(func() { rec.RegisterCalls = append(rec.RegisterCalls, call) })
		ctx.JSON(http.StatusCreated, gin.H{"message": "registered"})
	})

	engine.POST("/api/time-slots/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		var slot domain.TimeSlot
		if err := ctx.ShouldBindJSON(&slot); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

			return
		}

		ctx.JSON(http.StatusCreated, slot)
	})

	engine.POST("/api/send-rdv-reminders/", func(ctx *gin.Context) {
		if !authorized(ctx) {
			return
		}

		var req struct {
			EventID uint `json:"event_id"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "malformed payload"})

			return
		}
		rec.record(func() { rec.ReminderCalls = append(rec.ReminderCalls, req.EventID) })

		ctx.JSON(http.StatusOK, gin.H{"message": "queued"})
	})

	return httptest.NewServer(engine), rec
}
