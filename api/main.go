package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const version = "1.0.0"

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

type config struct {
	port int
	env  string
	db   struct {
		dsn                string
		maxOpenConnections int
		maxIdleConnections int
		maxIdleTime        time.Duration
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	limiter struct {
		enabled             bool
		maxRequestPerSecond float64
		burst               int
	}
	cors struct {
		trustedOrigins []string
	}
	jwtSecret string
}

type application struct {
	config  config
	storage *storage
	mailer  *mailer
}

func main() {
	var cfg config
	flag.IntVar(&cfg.port, "port", 3000, "Server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment [development|production]")

	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConnections, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConnections, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	var maxIdleTime string
	flag.StringVar(&maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	flag.StringVar(&cfg.smtp.host, "smtp-host", os.Getenv("SMTP_HOST"), "SMTP host")
	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	flag.IntVar(&cfg.smtp.port, "smtp-port", smtpPort, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", os.Getenv("SMTP_USERNAME"), "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", os.Getenv("SMTP_PASSWORD"), "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", os.Getenv("SMTP_SENDER"), "SMTP sender")

	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")
	flag.Float64Var(&cfg.limiter.maxRequestPerSecond, "limiter-rps", 4, "Rate limiter max requests per second per IP")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 8, "Rate limiter burst per IP")

	var trustedOrigins string
	flag.StringVar(&trustedOrigins, "cors-trusted-origins", "*", "CORS trusted origins (space separated)")

	flag.StringVar(&cfg.jwtSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
	flag.Parse()

	cfg.cors.trustedOrigins = strings.Fields(trustedOrigins)

	d, err := time.ParseDuration(maxIdleTime)
	if err != nil {
		cfg.db.maxIdleTime = 15 * time.Minute
		log.Warnf(`invalid value %s for flag "db-max-idle-time" defaulting to %s`, maxIdleTime, cfg.db.maxIdleTime)
	} else {
		cfg.db.maxIdleTime = d
	}

	if cfg.jwtSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal(err)
		}
		cfg.jwtSecret = string(secret)
		log.Warn("JWT_SECRET is not set, generated a random secret; issued tokens will not survive a restart")
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Info("established a connection with database")

	app := &application{
		config:  cfg,
		storage: newStorage(db),
		mailer:  newMailer(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.port),
		Handler:      composeRoutes(app),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.WithFields(logrus.Fields{"env": cfg.env, "port": cfg.port}).Info("starting server")
	err = srv.ListenAndServe()
	log.Fatal(err)
}
