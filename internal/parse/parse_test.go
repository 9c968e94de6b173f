package parse

import (
	"context"
	"testing"

	"github.com/phobologic/swaglint/internal/lang"
	"github.com/phobologic/swaglint/internal/syntax"
)

func parseTS(t *testing.T, source string) *syntax.File {
	t.Helper()
	l := lang.Languages["typescript"]
	if l == nil {
		t.Fatal("typescript language not registered")
	}
	f, err := File(context.Background(), l.NewParser(), []byte(source), "test.ts")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	return f
}

func onlyClass(t *testing.T, f *syntax.File) *syntax.Class {
	t.Helper()
	if len(f.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(f.Classes))
	}
	return f.Classes[0]
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	f := parseTS(t, "")
	if len(f.Classes) != 0 || len(f.Interfaces) != 0 || len(f.Enums) != 0 {
		t.Errorf("expected no declarations, got %+v", f)
	}
	if f.Path != "test.ts" {
		t.Errorf("path = %q", f.Path)
	}
}

func TestParseControllerClass(t *testing.T) {
	t.Parallel()

	source := `@Controller('users')
export class UsersController {
  constructor(private readonly service: UsersService) {}

  @Get(':id')
  @ApiOperation({ summary: 'Get user', description: "" })
  findOne(@Param('id') id: string) {
    return this.service.find(id);
  }
}
`
	c := onlyClass(t, parseTS(t, source))
	if c.Name != "UsersController" {
		t.Errorf("name = %q", c.Name)
	}
	if !c.Decorators.Has("Controller") {
		t.Errorf("class decorators = %+v, want Controller", c.Decorators)
	}
	if len(c.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(c.Methods))
	}

	ctor := c.Methods[0]
	if ctor.Kind != syntax.Constructor || ctor.IsEndpointCandidate() {
		t.Errorf("constructor kind = %v", ctor.Kind)
	}

	m := c.Methods[1]
	if m.Name != "findOne" {
		t.Errorf("method name = %q", m.Name)
	}
	if m.NameAt.Line != 7 || m.NameAt.Column != 3 {
		t.Errorf("method name position = %v", m.NameAt)
	}
	if len(m.Decorators) != 2 || m.Decorators[0].Name != "Get" || m.Decorators[1].Name != "ApiOperation" {
		t.Fatalf("method decorators = %+v", m.Decorators)
	}
	if m.Decorators[1].At.Line != 6 || m.Decorators[1].At.Column != 3 {
		t.Errorf("ApiOperation position = %v", m.Decorators[1].At)
	}

	obj, ok := m.Decorators[1].Arg(0).(*syntax.ObjectLiteral)
	if !ok {
		t.Fatalf("ApiOperation arg = %T", m.Decorators[1].Arg(0))
	}
	if len(obj.Fields) != 2 {
		t.Fatalf("fields = %+v", obj.Fields)
	}
	if s, ok := obj.Fields[0].Value.(*syntax.StringLiteral); !ok || obj.Fields[0].Key != "summary" || s.Value != "Get user" {
		t.Errorf("summary field = %+v", obj.Fields[0])
	}
	if s, ok := obj.Fields[1].Value.(*syntax.StringLiteral); !ok || s.Value != "" {
		t.Errorf("description field = %+v", obj.Fields[1])
	}

	if len(m.Params) != 1 {
		t.Fatalf("params = %+v", m.Params)
	}
	p := m.Params[0]
	if p.Name != "id" {
		t.Errorf("param name = %q", p.Name)
	}
	if p.Type.Kind != syntax.PrimitiveType || p.Type.Name != "string" {
		t.Errorf("param type = %+v", p.Type)
	}
	param := p.Decorators.Find("Param")
	if param == nil {
		t.Fatal("missing @Param")
	}
	if s, ok := param.Arg(0).(*syntax.StringLiteral); !ok || s.Value != "id" {
		t.Errorf("@Param arg = %+v", param.Arg(0))
	}
}

func TestParseUnexportedClassDecorators(t *testing.T) {
	t.Parallel()

	c := onlyClass(t, parseTS(t, "@Controller()\nclass Plain {}\n"))
	if !c.Decorators.Has("Controller") {
		t.Errorf("decorators = %+v", c.Decorators)
	}
}

func TestParseDTOProperties(t *testing.T) {
	t.Parallel()

	source := `export class CreateUserDto extends BaseDto {
  @ApiProperty({ description: 'Name', example: 'Ada', type: String })
  name: string;

  @swagger.ApiPropertyOptional()
  tags?: string[];

  address: AddressDto;

  items: Array<ItemDto>;

  parent: CreateUserDto | null;

  role: Role;

  kind: 'a' | 'b';
}
`
	c := onlyClass(t, parseTS(t, source))
	if len(c.Extends) != 1 || c.Extends[0] != "BaseDto" {
		t.Errorf("extends = %v", c.Extends)
	}
	if len(c.Properties) != 7 {
		t.Fatalf("expected 7 properties, got %d", len(c.Properties))
	}

	tests := []struct {
		name     string
		kind     syntax.TypeKind
		typeName string
		elem     string
		dec      string
	}{
		{"name", syntax.PrimitiveType, "string", "", "ApiProperty"},
		{"tags", syntax.ArrayType, "", "string", "ApiPropertyOptional"},
		{"address", syntax.NamedType, "AddressDto", "", ""},
		{"items", syntax.ArrayType, "", "ItemDto", ""},
		{"parent", syntax.NamedType, "CreateUserDto", "", ""},
		{"role", syntax.NamedType, "Role", "", ""},
		{"kind", syntax.UnnamedType, "", "", ""},
	}

	for i, tt := range tests {
		p := c.Properties[i]
		if p.Name != tt.name {
			t.Errorf("property %d name = %q, want %q", i, p.Name, tt.name)
			continue
		}
		if p.Kind != syntax.PropertyDeclaration {
			t.Errorf("%s: kind = %v", tt.name, p.Kind)
		}
		if p.Type.Kind != tt.kind {
			t.Errorf("%s: type kind = %v, want %v (%q)", tt.name, p.Type.Kind, tt.kind, p.Type.Text)
		}
		if tt.typeName != "" && p.Type.Name != tt.typeName {
			t.Errorf("%s: type name = %q, want %q", tt.name, p.Type.Name, tt.typeName)
		}
		if tt.elem != "" && (p.Type.Elem == nil || p.Type.Element().Name != tt.elem) {
			t.Errorf("%s: element = %+v, want %q", tt.name, p.Type.Elem, tt.elem)
		}
		if tt.dec == "" && len(p.Decorators) != 0 {
			t.Errorf("%s: unexpected decorators %+v", tt.name, p.Decorators)
		}
		if tt.dec != "" && !p.Decorators.Has(tt.dec) {
			t.Errorf("%s: decorators = %+v, want %s", tt.name, p.Decorators, tt.dec)
		}
	}

	if !c.Properties[1].Optional {
		t.Error("tags should be optional")
	}
	typ := c.Properties[0].Decorators[0]
	obj := typ.Arg(0).(*syntax.ObjectLiteral)
	if _, ok := obj.Fields[2].Value.(*syntax.OpaqueExpr); !ok {
		t.Errorf("type: String should be opaque, got %T", obj.Fields[2].Value)
	}
}

func TestParseInterfaceAndEnum(t *testing.T) {
	t.Parallel()

	source := `export interface Paged extends Base {
  page: number;
  size?: number;
}

export enum Role {
  Admin = 'admin',
  User,
}
`
	f := parseTS(t, source)
	if len(f.Interfaces) != 1 {
		t.Fatalf("interfaces = %d", len(f.Interfaces))
	}
	it := f.Interfaces[0]
	if it.Name != "Paged" {
		t.Errorf("interface name = %q", it.Name)
	}
	if len(it.Properties) != 2 || it.Properties[0].Kind != syntax.PropertySignature {
		t.Errorf("interface properties = %+v", it.Properties)
	}
	if len(it.Extends) != 1 || it.Extends[0] != "Base" {
		t.Errorf("interface extends = %v", it.Extends)
	}

	if len(f.Enums) != 1 || f.Enums[0].Name != "Role" {
		t.Fatalf("enums = %+v", f.Enums)
	}
	if got := f.Enums[0].Members; len(got) != 2 || got[0] != "Admin" || got[1] != "User" {
		t.Errorf("enum members = %v", got)
	}
}

func TestParseDecoratorArguments(t *testing.T) {
	t.Parallel()

	source := `class A {
  @ApiParam({ name: "id", 'description': "User \"id\"", example: 42, schema })
  @Post
  m() {}
}
`
	c := onlyClass(t, parseTS(t, source))
	m := c.Methods[0]
	if len(m.Decorators) != 2 {
		t.Fatalf("decorators = %+v", m.Decorators)
	}
	if post := m.Decorators[1]; post.Name != "Post" || len(post.Args) != 0 {
		t.Errorf("@Post = %+v", post)
	}

	obj := m.Decorators[0].Arg(0).(*syntax.ObjectLiteral)
	if len(obj.Fields) != 4 {
		t.Fatalf("fields = %+v", obj.Fields)
	}
	if obj.Fields[1].Key != "description" {
		t.Errorf("quoted key = %q", obj.Fields[1].Key)
	}
	if s := obj.Fields[1].Value.(*syntax.StringLiteral); s.Value != `User "id"` {
		t.Errorf("escaped value = %q", s.Value)
	}
	if _, ok := obj.Fields[2].Value.(*syntax.OpaqueExpr); !ok {
		t.Errorf("number should be opaque, got %T", obj.Fields[2].Value)
	}
	if obj.Fields[3].Key != "schema" || obj.Fields[3].Value != nil {
		t.Errorf("shorthand = %+v", obj.Fields[3])
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"tab\there"`, "tab\there"},
		{`"\x41B\u{43}"`, "ABC"},
		{`"it\'s"`, "it's"},
		{`unquoted`, "unquoted"},
		{`""`, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := unquote(tt.in); got != tt.want {
				t.Errorf("unquote(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
