package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewhub/config"
	"crewhub/internal/accmgmt"
	"crewhub/internal/authz"
	"crewhub/internal/db"
	"crewhub/internal/health"
	"crewhub/internal/logs"
	"crewhub/internal/mailer"
	"crewhub/internal/middleware"
	"crewhub/internal/models"
	"crewhub/internal/payments"
	"crewhub/internal/repo"
	"crewhub/internal/roles"
	"crewhub/internal/sicknotes"
	"crewhub/internal/token"
	"crewhub/internal/userinfo"
	"crewhub/internal/users"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	mail       *mailer.Dispatcher
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Логи */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.EmailCode{},
		&models.Payment{},
		&models.SickNote{},
		&models.UserInfo{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	/* 3) Хранилища и сервисы */
	userStore := repo.NewUserStore(a.db)
	roleStore := repo.NewRoleStore(a.db)
	codeStore := repo.NewCodeStore(a.db)
	paymentStore := repo.NewPaymentStore(a.db)
	sickNoteStore := repo.NewSickNoteStore(a.db)
	infoStore := repo.NewUserInfoStore(a.db)

	tokens := token.New([]byte(a.cfg.Auth.Secret), a.cfg.Auth.TokenTTL)
	engine := authz.NewEngine(userStore, roleStore)

	var sender mailer.Sender = mailer.LogSender{}
	if a.cfg.Mail.Enabled {
		sender = &mailer.SMTPSender{
			Host:    a.cfg.Mail.Host,
			Port:    a.cfg.Mail.Port,
			From:    a.cfg.Mail.From,
			BaseURL: a.cfg.Mail.BaseURL,
		}
	}
	a.mail = mailer.NewDispatcher(sender, 64)

	accSvc := accmgmt.NewService(userStore, roleStore, codeStore, tokens, a.mail)
	userSvc := users.NewService(userStore, roleStore, codeStore,
		paymentStore, sickNoteStore, infoStore, accSvc, a.mail)
	roleSvc := roles.NewService(roleStore)
	paymentSvc := payments.NewService(paymentStore, userStore, roleStore)
	sickNoteSvc := sicknotes.NewService(sickNoteStore, userStore)
	infoSvc := userinfo.NewService(infoStore, userStore)

	/* 4) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 5) Health + публичные маршруты */
	health.RegisterRoutes(a.Router, a.db)
	accmgmt.RegisterPublicRoutes(a.Router, accSvc)

	/* 6) Защищённый API: Bearer-фильтр на весь сабраутер */
	api := a.Router.PathPrefix("/api/v1").Subrouter()
	api.Use(authz.Bearer(tokens))

	accmgmt.RegisterProtectedRoutes(api, accSvc, engine)
	users.RegisterRoutes(api, userSvc, engine)
	roles.RegisterRoutes(api, roleSvc, engine)
	payments.RegisterRoutes(api, paymentSvc, engine)
	sicknotes.RegisterRoutes(api, sickNoteSvc, engine)
	userinfo.RegisterRoutes(api, infoSvc, engine)

	/* (необязательно) вывести известные маршруты в лог при старте */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := rt.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// Жёсткие таймауты — это важно для production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	// Письма, уже поставленные в очередь, дожидаемся после остановки HTTP.
	a.mail.Close()
	return nil
}
