package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/sirupsen/logrus"

	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/container"
	"github.com/okrhub/okrhub-lambda/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:        c.UserContainer.Handler,
		OKRHandler:         c.OKRContainer.Handler,
		SpreadsheetHandler: c.SpreadsheetContainer.Handler,
		AISuggestHandler:   c.AISuggestContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		adapter := chiadapter.New(handler)
		lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
			return adapter.ProxyWithContext(ctx, req)
		})
		return
	}

	addr := ":" + config.Env.Port
	logrus.Infof("Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
