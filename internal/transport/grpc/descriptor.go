package grpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	protoFile   = "skywings/v1/flights.proto"
	protoStruct = ".google.protobuf.Struct"
)

// The service has no .proto source, so its file descriptor is built here
// and registered globally for server reflection.
func init() {
	fd, err := protodesc.NewFile(flightsFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s descriptor: %v", protoFile, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("register %s descriptor: %v", protoFile, err))
	}
}

func flightsFileProto() *descriptorpb.FileDescriptorProto {
	method := func(name string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(protoStruct),
			OutputType: proto.String(protoStruct),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String("skywings.v1"),
		Dependency: []string{"google/protobuf/struct.proto"},
		Syntax:     proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("FlightsService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GenerateFlights"),
				method("LookupStatus"),
				method("ConvertPrice"),
			},
		}},
	}
}
