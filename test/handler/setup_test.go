package handler_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/ansh808s/cause-drop/internal/cache"
	"github.com/ansh808s/cause-drop/internal/chain"
	"github.com/ansh808s/cause-drop/internal/config"
	"github.com/ansh808s/cause-drop/internal/handler"
	"github.com/ansh808s/cause-drop/internal/middleware"
	"github.com/ansh808s/cause-drop/internal/repo"
	"github.com/ansh808s/cause-drop/internal/service"
	"github.com/ansh808s/cause-drop/internal/uploader"
	"github.com/ansh808s/cause-drop/test/testutil"
)

var testJWTSecret = []byte("test-secret")

type stubChain struct{}

func (stubChain) BuildTransfer(ctx context.Context, req chain.TransferRequest) (string, error) {
	return "c3R1Yi10cmFuc2FjdGlvbg==", nil
}

type testWallet struct {
	address string
	priv    ed25519.PrivateKey
}

func newTestWallet(t *testing.T) testWallet {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return testWallet{
		address: solana.PublicKeyFromBytes(pub).String(),
		priv:    priv,
	}
}

func (w testWallet) sign(message string) string {
	return base64.StdEncoding.EncodeToString(ed25519.Sign(w.priv, []byte(message)))
}

func setupRouter(t *testing.T) (http.Handler, *service.AuthService, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(conn)
	campaignRepo := repo.NewCampaignRepo(conn)
	donationRepo := repo.NewDonationRepo(conn)

	campaignCache := cache.NewCampaignCache(16, time.Minute)
	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour, "causedrop.test")
	campaignService := service.NewCampaignService(campaignRepo, userRepo, campaignCache)
	donationService := service.NewDonationService(campaignRepo, donationRepo, campaignCache, stubChain{},
		"http://localhost:3000/api/v1/actions/donation")

	presigner, err := uploader.NewPresigner(context.Background(), config.UploadConfig{
		Region:           "us-east-1",
		Bucket:           "causedrop-test",
		SecretID:         "test-id",
		SecretKey:        "test-key",
		Prefix:           "uploads",
		PresignExpiryMin: 15,
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Campaigns: handler.NewCampaignHandler(campaignService, donationService),
		Actions:   handler.NewActionHandler(donationService),
		Uploads:   handler.NewUploadHandler(presigner),
		Health:    handler.NewHealthHandler(conn),
		Users:     userRepo,
		JWTSecret: testJWTSecret,
		// keep the sign-in limiter out of the way in tests
		SignInWindow: 0,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	return engine, authService, cleanup
}
