package logger

import (
	"go.uber.org/zap"
)

var l = zap.NewNop()

// Init 初始化全局 logger
func Init(env string) error {
	var (
		lg  *zap.Logger
		err error
	)
	if env == "prod" {
		lg, err = zap.NewProduction()
	} else {
		lg, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	l = lg
	return nil
}

func L() *zap.Logger { return l }

func Sync() { _ = l.Sync() }
