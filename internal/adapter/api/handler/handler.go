package handler

import (
	"freestuff/internal/usecase"
)

var (
	itemHandler   *ItemHandler
	claimHandler  *ClaimHandler
	chatHandler   *ChatHandler
	userHandler   *UserHandler
	reportHandler *ReportHandler
)

func Setup(
	itemUseCase *usecase.ItemUseCase,
	claimUseCase *usecase.ClaimUseCase,
	chatUseCase *usecase.ChatUseCase,
	userUseCase *usecase.UserUseCase,
	reportUseCase *usecase.ReportUseCase,
) {
	itemHandler = NewItemHandler(itemUseCase)
	claimHandler = NewClaimHandler(claimUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	userHandler = NewUserHandler(userUseCase)
	reportHandler = NewReportHandler(reportUseCase)
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetClaimHandler() *ClaimHandler {
	return claimHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetReportHandler() *ReportHandler {
	return reportHandler
}
