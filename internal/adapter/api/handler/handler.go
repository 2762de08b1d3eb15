package handler

import (
	"b2bmarket/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	productHandler     *ProductHandler
	enquiryHandler     *EnquiryHandler
	requirementHandler *RequirementHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	enquiryUseCase *usecase.EnquiryUseCase,
	requirementUseCase *usecase.RequirementUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase)
	enquiryHandler = NewEnquiryHandler(enquiryUseCase)
	requirementHandler = NewRequirementHandler(requirementUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetEnquiryHandler() *EnquiryHandler {
	return enquiryHandler
}

func GetRequirementHandler() *RequirementHandler {
	return requirementHandler
}
