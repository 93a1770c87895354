package logger

import "go.uber.org/zap"

// no-op until Init, so packages can log from tests without setup
var log = zap.NewNop().Sugar()

// Init switches the package logger to zap's development config, or to the
// production (JSON) config when mode is "prod".
func Init(mode string) {
	var (
		l   *zap.Logger
		err error
	)
	if mode == "prod" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func Sync() {
	_ = log.Sync()
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}
