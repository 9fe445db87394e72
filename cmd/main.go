package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/container"
	"github.com/saulo-duarte/mentora-lambda/internal/router"
)

var chiLambda *chiadapter.ChiLambdaV2

func lambdaHandler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CurriculumHandler: c.CurriculumContainer.Handler,
		EnrollmentHandler: c.EnrollmentContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		ReviewHandler:     c.ReviewContainer.Handler,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		chiLambda = chiadapter.NewV2(r)
		lambda.Start(lambdaHandler)
		return
	}

	log := config.WithContext(context.Background())
	port := config.GetEnv("PORT", "8080")
	log.Infof("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
