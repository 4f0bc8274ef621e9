package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	aihttp "github.com/codehive-ide/codehive-backend/internal/ai/http"
	aiservice "github.com/codehive-ide/codehive-backend/internal/ai/service"
	httpapi "github.com/codehive-ide/codehive-backend/internal/api/http"
	"github.com/codehive-ide/codehive-backend/internal/api/http/middleware"
	"github.com/codehive-ide/codehive-backend/internal/auth"
	"github.com/codehive-ide/codehive-backend/internal/blobstore"
	exechttp "github.com/codehive-ide/codehive-backend/internal/execution/http"
	execservice "github.com/codehive-ide/codehive-backend/internal/execution/service"
	fileshttp "github.com/codehive-ide/codehive-backend/internal/files/http"
	filesservice "github.com/codehive-ide/codehive-backend/internal/files/service"
	projectshttp "github.com/codehive-ide/codehive-backend/internal/projects/http"
	"github.com/codehive-ide/codehive-backend/internal/projects/repository"
	projectsservice "github.com/codehive-ide/codehive-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Client      *mongo.Client
	DB          *mongo.Database
	Blobs       *blobstore.Store
	Runner      execservice.Runner
	Generator   aiservice.TextGenerator
	AuthClient  *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Client)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RequestID())
	if dep.AuthClient != nil {
		api.Use(auth.Middleware(dep.AuthClient))
	}

	repo := repository.NewRepo(dep.DB)

	projectSvc := projectsservice.NewProjectService(repo, dep.Blobs)
	fileSvc := filesservice.NewFileService(repo, dep.Blobs)
	orchestrator := execservice.NewOrchestrator(fileSvc, dep.Runner)

	projectshttp.New(projectSvc).Register(api.Group("/projects"))
	fileshttp.New(fileSvc).Register(api.Group("/files"))
	exechttp.New(orchestrator).Register(api.Group("/run"))

	if dep.Generator != nil {
		aihttp.New(aiservice.NewAIService(dep.Generator)).Register(api.Group("/ai"))
	}

	return r
}
