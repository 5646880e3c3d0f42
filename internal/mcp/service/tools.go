package service

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hollowvale/adventure-engine/internal/game/service"
	"github.com/hollowvale/adventure-engine/internal/mcp/domain"
)

// registerTools registers every engine tool on the MCP server.
func registerTools(mcpServer *mcp.Server, engine *service.Engine) {
	registerSessionTools(mcpServer, engine)
	registerActionTools(mcpServer, engine)
	registerSystemTools(mcpServer, engine)
	registerPerceptionTools(mcpServer, engine)
	registerWorldTools(mcpServer, engine)

	mcp.AddTool(mcpServer, domain.ExecuteBatchTool(), domain.ExecuteBatchHandler(engine))
}

func registerSessionTools(mcpServer *mcp.Server, engine *service.Engine) {
	mcp.AddTool(mcpServer, domain.StartAdventureTool(), domain.StartAdventureHandler(engine))
	mcp.AddTool(mcpServer, domain.ContinueAdventureTool(), domain.ContinueAdventureHandler(engine))
	mcp.AddTool(mcpServer, domain.ListAdventuresTool(), domain.ListAdventuresHandler(engine))
	mcp.AddTool(mcpServer, domain.ListSessionsTool(), domain.ListSessionsHandler(engine))
	mcp.AddTool(mcpServer, domain.GetStateTool(), domain.GetStateHandler(engine))
	mcp.AddTool(mcpServer, domain.GetSessionInfoTool(), domain.GetSessionInfoHandler(engine))
	mcp.AddTool(mcpServer, domain.GetHistoryTool(), domain.GetHistoryHandler(engine))
	mcp.AddTool(mcpServer, domain.SummarizeProgressTool(), domain.SummarizeProgressHandler(engine))
	mcp.AddTool(mcpServer, domain.GetAdventureSummaryTool(), domain.GetAdventureSummaryHandler(engine))
	mcp.AddTool(mcpServer, domain.RandomizeWordTool(), domain.RandomizeWordHandler(engine))
}

func registerActionTools(mcpServer *mcp.Server, engine *service.Engine) {
	mcp.AddTool(mcpServer, domain.TakeActionTool(), domain.TakeActionHandler(engine))
	mcp.AddTool(mcpServer, domain.CombatRoundTool(), domain.CombatRoundHandler(engine))
	mcp.AddTool(mcpServer, domain.ModifyStateTool(), domain.ModifyStateHandler(engine))
	mcp.AddTool(mcpServer, domain.EvalScriptTool(), domain.EvalScriptHandler(engine))
}

func registerSystemTools(mcpServer *mcp.Server, engine *service.Engine) {
	mcp.AddTool(mcpServer, domain.ManageInventoryTool(), domain.ManageInventoryHandler(engine))
	mcp.AddTool(mcpServer, domain.UpdateQuestTool(), domain.UpdateQuestHandler(engine))
	mcp.AddTool(mcpServer, domain.InteractNPCTool(), domain.InteractNPCHandler(engine))
	mcp.AddTool(mcpServer, domain.ManageFactionTool(), domain.ManageFactionHandler(engine))
	mcp.AddTool(mcpServer, domain.ManageEconomyTool(), domain.ManageEconomyHandler(engine))
	mcp.AddTool(mcpServer, domain.ManageTimeTool(), domain.ManageTimeHandler(engine))
	mcp.AddTool(mcpServer, domain.ManageStatusEffectsTool(), domain.ManageStatusEffectsHandler(engine))
}

func registerPerceptionTools(mcpServer *mcp.Server, engine *service.Engine) {
	mcp.AddTool(mcpServer, domain.RecordEventTool(), domain.RecordEventHandler(engine))
	mcp.AddTool(mcpServer, domain.AddCharacterMemoryTool(), domain.AddCharacterMemoryHandler(engine))
	mcp.AddTool(mcpServer, domain.GetCharacterMemoriesTool(), domain.GetCharacterMemoriesHandler(engine))
}

func registerWorldTools(mcpServer *mcp.Server, engine *service.Engine) {
	mcp.AddTool(mcpServer, domain.CreateCharacterTool(), domain.CreateCharacterHandler(engine))
	mcp.AddTool(mcpServer, domain.UpdateCharacterTool(), domain.UpdateCharacterHandler(engine))
	mcp.AddTool(mcpServer, domain.GetCharacterTool(), domain.GetCharacterHandler(engine))
	mcp.AddTool(mcpServer, domain.ListCharactersTool(), domain.ListCharactersHandler(engine))
	mcp.AddTool(mcpServer, domain.CreateLocationTool(), domain.CreateLocationHandler(engine))
	mcp.AddTool(mcpServer, domain.UpdateLocationTool(), domain.UpdateLocationHandler(engine))
	mcp.AddTool(mcpServer, domain.GetLocationTool(), domain.GetLocationHandler(engine))
	mcp.AddTool(mcpServer, domain.ListLocationsTool(), domain.ListLocationsHandler(engine))
	mcp.AddTool(mcpServer, domain.CreateItemTool(), domain.CreateItemHandler(engine))
	mcp.AddTool(mcpServer, domain.UpdateItemTool(), domain.UpdateItemHandler(engine))
	mcp.AddTool(mcpServer, domain.GetItemTool(), domain.GetItemHandler(engine))
	mcp.AddTool(mcpServer, domain.ListItemsTool(), domain.ListItemsHandler(engine))
}
