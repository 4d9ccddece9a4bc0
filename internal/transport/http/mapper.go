package http

import (
	"encoding/json"

	"github.com/heyymateen/CodeSync/internal/core"
	"github.com/heyymateen/CodeSync/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" || join.UserName == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId and userName are required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoin,
			Room: join.RoomID,
			User: join.UserName,
		}, nil, nil

	case proto.InboundTypeLeaveRoom:
		// Uses only the connection's own state.
		return &core.Command{Kind: core.CommandLeaveRoom}, nil, nil

	case proto.InboundTypeCodeChange:
		var change proto.CodeChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if change.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandCodeChange,
			Room: change.RoomID,
			Code: change.Code,
		}, nil, nil

	case proto.InboundTypeInputChange:
		var change proto.InputChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if change.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:  core.CommandInputChange,
			Room:  change.RoomID,
			Input: change.Input,
		}, nil, nil

	case proto.InboundTypeLanguageChange:
		var change proto.LanguageChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, nil, err
		}
		if change.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandLanguageChange,
			Room:     change.RoomID,
			Language: change.Language,
		}, nil, nil

	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		if typing.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandTyping,
			Room: typing.RoomID,
			User: typing.UserName,
		}, nil, nil

	case proto.InboundTypeCompileCode:
		var compile proto.CompileData
		if err := json.Unmarshal(inbound.Data, &compile); err != nil {
			return nil, nil, err
		}
		if compile.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandRunCode,
			Room:     compile.RoomID,
			Code:     compile.Code,
			Language: compile.Language,
			Version:  compile.Version,
			Input:    compile.Input,
		}, nil, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventCodeUpdate:
		return eventOutbound(proto.EventCodeUpdate, proto.EventCode{RoomID: event.Room, Code: event.Code})
	case core.EventInputUpdate:
		return eventOutbound(proto.EventInputUpdate, proto.EventInput{RoomID: event.Room, Input: event.Input})
	case core.EventLanguageUpdate:
		return eventOutbound(proto.EventLanguageUpdate, proto.EventLanguage{RoomID: event.Room, Language: event.Language})
	case core.EventMembers:
		return eventOutbound(proto.EventUserJoined, proto.EventMembers{RoomID: event.Room, Users: event.Members})
	case core.EventUserJoinedNotice:
		return eventOutbound(proto.EventUserJoinedNote, proto.EventUser{RoomID: event.Room, UserName: event.User})
	case core.EventUserLeft:
		return eventOutbound(proto.EventUserLeft, proto.EventUser{RoomID: event.Room, UserName: event.User})
	case core.EventUserTyping:
		return eventOutbound(proto.EventUserTyping, proto.EventUser{RoomID: event.Room, UserName: event.User})
	case core.EventUsernameTaken:
		return eventOutbound(proto.EventUsernameTaken, proto.EventUser{UserName: event.User})
	case core.EventCodeResponse:
		return eventOutbound(proto.EventCodeResponse, event.Result)
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func eventOutbound(name string, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: name, Data: data}
}
